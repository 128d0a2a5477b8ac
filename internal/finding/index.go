package finding

import "sort"

// Index maps each annotated line to its single winning finding. Build a
// fresh one from every findings snapshot; it is immutable afterwards and
// safe for concurrent reads.
type Index struct {
	byLine map[int]Finding
	lineOf map[string]int
}

// BuildIndex resolves a findings slice into one winner per line.
//
// When findings collide on a line, a pattern-based finding beats a
// heuristic one no matter the input order; between findings of equal
// standing the earliest in the input wins. Unanchored findings are skipped
// here but remain valid list entries for the caller.
func BuildIndex(findings []Finding) Index {
	idx := Index{
		byLine: make(map[int]Finding, len(findings)),
		lineOf: make(map[string]int, len(findings)),
	}
	for _, f := range findings {
		if !f.Anchored() {
			continue
		}
		idx.lineOf[f.ID] = f.Line
		cur, ok := idx.byLine[f.Line]
		if !ok || detectionRank(f) > detectionRank(cur) {
			idx.byLine[f.Line] = f
		}
	}
	return idx
}

// detectionRank is the collision order for findings anchored to the same
// line. An integer so a finer-grained ordering can slot in later without
// touching the scan.
func detectionRank(f Finding) int {
	if f.PatternBased() {
		return 1
	}
	return 0
}

// Get returns the winning finding for a line.
func (i Index) Get(line int) (Finding, bool) {
	f, ok := i.byLine[line]
	return f, ok
}

// Has reports whether the line carries an annotation.
func (i Index) Has(line int) bool {
	_, ok := i.byLine[line]
	return ok
}

// LineOf returns the anchor line for a finding id, whether or not that
// finding won its line.
func (i Index) LineOf(id string) (int, bool) {
	n, ok := i.lineOf[id]
	return n, ok
}

// Len returns the number of annotated lines.
func (i Index) Len() int {
	return len(i.byLine)
}

// Lines returns the annotated line numbers in ascending order.
func (i Index) Lines() []int {
	lines := make([]int, 0, len(i.byLine))
	for n := range i.byLine {
		lines = append(lines, n)
	}
	sort.Ints(lines)
	return lines
}
