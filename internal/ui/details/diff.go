package details

import (
	"strings"
	"unicode"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// fixPreviewMaxLen skips the word-level diff for lines exceeding this many
// bytes; the preview falls back to whole-line coloring.
const fixPreviewMaxLen = 500

// segmentKind indicates whether a diff segment is unchanged, added, or
// deleted.
type segmentKind int

const (
	segmentUnchanged segmentKind = iota
	segmentAdded
	segmentDeleted
)

// segment is a run of text with its diff status.
type segment struct {
	kind segmentKind
	text string
}

// tokenize splits a line into words, punctuation, and whitespace tokens so
// the diff lands on identifier boundaries instead of characters.
// Example: "eval(req.body)" becomes ["eval", "(", "req", ".", "body", ")"].
func tokenize(line string) []string {
	if line == "" {
		return nil
	}

	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range line {
		switch {
		case unicode.IsSpace(r):
			flush()
			tokens = append(tokens, string(r))
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			flush()
			tokens = append(tokens, string(r))
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return tokens
}

// diffLine computes the word-level diff between the flagged line and its
// suggested replacement. Old segments describe the original, new segments
// the suggestion.
func diffLine(original, suggestion string) (oldSegs, newSegs []segment) {
	if original == "" && suggestion == "" {
		return nil, nil
	}
	if original == "" {
		return nil, []segment{{kind: segmentAdded, text: suggestion}}
	}
	if suggestion == "" {
		return []segment{{kind: segmentDeleted, text: original}}, nil
	}
	if len(original) > fixPreviewMaxLen || len(suggestion) > fixPreviewMaxLen {
		return []segment{{kind: segmentDeleted, text: original}},
			[]segment{{kind: segmentAdded, text: suggestion}}
	}

	// Join tokens with NUL so the character diff cannot split inside one.
	oldText := strings.Join(tokenize(original), "\x00")
	newText := strings.Join(tokenize(suggestion), "\x00")

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	for _, d := range diffs {
		text := strings.ReplaceAll(d.Text, "\x00", "")
		if text == "" {
			continue
		}

		switch d.Type {
		case diffmatchpatch.DiffEqual:
			oldSegs = append(oldSegs, segment{kind: segmentUnchanged, text: text})
			newSegs = append(newSegs, segment{kind: segmentUnchanged, text: text})
		case diffmatchpatch.DiffDelete:
			oldSegs = append(oldSegs, segment{kind: segmentDeleted, text: text})
		case diffmatchpatch.DiffInsert:
			newSegs = append(newSegs, segment{kind: segmentAdded, text: text})
		}
	}

	return oldSegs, newSegs
}
