// Package syntax turns raw source lines into classified token runs for
// display. Classification is lexical only: ordered regex rule categories
// carve each line into spans. There is no parsing, no validation, and no
// cross-line state.
package syntax

// Class identifies the display classification of a token.
type Class int

const (
	ClassPlain Class = iota
	ClassKeyword
	ClassString
	ClassComment
	ClassNumber
	ClassTypename
	ClassCall
)

func (c Class) String() string {
	switch c {
	case ClassPlain:
		return "plain"
	case ClassKeyword:
		return "keyword"
	case ClassString:
		return "string"
	case ClassComment:
		return "comment"
	case ClassNumber:
		return "number"
	case ClassTypename:
		return "typename"
	case ClassCall:
		return "call"
	default:
		return "unknown"
	}
}

// Token is one contiguous run of a source line sharing a single class.
// Concatenating a line's tokens in order reproduces the line exactly.
type Token struct {
	Text  string
	Class Class
}
