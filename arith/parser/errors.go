package parser

import (
	"fmt"

	"github.com/zcfabra/flat-ast-interpreter/arith/lexer"
)

// GroupingError reports an unbalanced parenthesis. Open is set for an
// unclosed "(", Close for a ")" with no matching "(".
type GroupingError struct {
	Open  *lexer.Token
	Close *lexer.Token
	// Got is the token found where ")" was expected, nil at end of input.
	Got *lexer.Token
}

func (e *GroupingError) Error() string {
	switch {
	case e.Close != nil:
		return fmt.Sprintf("unmatched ')' at offset %d", e.Close.Start)
	case e.Got != nil:
		return fmt.Sprintf("unclosed '(' at offset %d: expected ')', got %s at offset %d", e.Open.Start, e.Got.Kind, e.Got.Start)
	default:
		return fmt.Sprintf("unclosed '(' at offset %d: expected ')', got end of input", e.Open.Start)
	}
}

// Offset returns the source offset the error should be reported at.
func (e *GroupingError) Offset() int {
	if e.Close != nil {
		return e.Close.Start
	}
	return e.Open.Start
}

// SyntaxError reports a token that cannot appear where it was found. Got
// is nil when the input ended early.
type SyntaxError struct {
	Message string
	Got     *lexer.Token
	// At is the offset of Got, or the end of the last token read.
	At int
}

func (e *SyntaxError) Error() string {
	if e.Got == nil {
		return fmt.Sprintf("%s at offset %d, got end of input", e.Message, e.At)
	}
	return fmt.Sprintf("%s at offset %d, got %s", e.Message, e.At, e.Got.Kind)
}

// DepthError is returned when parentheses nest deeper than the limit set
// with WithMaxDepth. Offset is the position of the "(" over the limit.
type DepthError struct {
	Limit  int
	Offset int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("parentheses nested deeper than %d at offset %d", e.Limit, e.Offset)
}
