package syntax

// DefaultMaxLineLen is the segmentation cutoff. Lines at or beyond this
// many bytes come back as a single plain token; pathological minified lines
// are a display problem, not a classification one.
const DefaultMaxLineLen = 1000

// SegmentLine splits one line into classified tokens using the profile's
// rule categories. It is pure, deterministic, and safe for concurrent use.
//
// The line starts as a single plain span. Each rule category, in precedence
// order, scans only the spans still plain and carves its matches out left
// to right. Spans claimed by an earlier category are never revisited, so a
// keyword inside a string stays part of the string. Whatever remains plain
// at the end is emitted as plain tokens. The concatenation of the returned
// token texts is always the input line, byte for byte. An empty line yields
// no tokens.
func SegmentLine(line string, p *Profile) []Token {
	return segmentLine(line, p, DefaultMaxLineLen)
}

type span struct {
	start, end int
	class      Class
}

func segmentLine(line string, p *Profile, maxLen int) []Token {
	if line == "" {
		return nil
	}
	if maxLen > 0 && len(line) >= maxLen {
		return []Token{{Text: line, Class: ClassPlain}}
	}

	spans := []span{{start: 0, end: len(line), class: ClassPlain}}
	for _, cat := range p.cats {
		for _, r := range cat.rules {
			spans = applyRule(line, spans, r, cat.class)
		}
	}

	tokens := make([]Token, 0, len(spans))
	for _, s := range spans {
		tokens = append(tokens, Token{Text: line[s.start:s.end], Class: s.class})
	}
	return tokens
}

// applyRule splits every still-plain span around the rule's matches. Match
// offsets are relative to the span and rebased onto the line.
func applyRule(line string, spans []span, r rule, class Class) []span {
	out := make([]span, 0, len(spans))
	for _, s := range spans {
		if s.class != ClassPlain {
			out = append(out, s)
			continue
		}

		locs := r.re.FindAllStringSubmatchIndex(line[s.start:s.end], -1)
		if len(locs) == 0 {
			out = append(out, s)
			continue
		}

		prev := s.start
		for _, loc := range locs {
			cs, ce := loc[0]+s.start, loc[1]+s.start
			if r.group > 0 && loc[2*r.group] >= 0 {
				cs, ce = loc[2*r.group]+s.start, loc[2*r.group+1]+s.start
			}
			if cs == ce {
				continue
			}
			if cs > prev {
				out = append(out, span{start: prev, end: cs, class: ClassPlain})
			}
			out = append(out, span{start: cs, end: ce, class: class})
			prev = ce
		}
		if prev < s.end {
			out = append(out, span{start: prev, end: s.end, class: ClassPlain})
		}
	}
	return out
}
