package lsp

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/zcfabra/flat-ast-interpreter/arith/lexer"
	"github.com/zcfabra/flat-ast-interpreter/arith/parser"
	"github.com/zcfabra/flat-ast-interpreter/format"
)

// Document is the parsed state of one open text document. Pool holds
// whatever was parsed before Err, if any.
type Document struct {
	URI  protocol.DocumentUri
	Text string
	Pool *parser.Pool
	Err  error
}

// Analyze parses text as a sequence of expressions. Any Unicode white
// space separates tokens.
func Analyze(uri protocol.DocumentUri, text string, opts ...parser.Option) *Document {
	pool, err := parser.Parse(lexer.New(text, lexer.WithSpace(unicode.IsSpace)), opts...)
	return &Document{URI: uri, Text: text, Pool: pool, Err: err}
}

// Diagnostics converts the parse error, if any, into LSP diagnostics. The
// result is never nil so publishing it clears stale markers.
func (d *Document) Diagnostics() []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if d.Err == nil {
		return diagnostics
	}
	start, length := errorSpan(d.Err)
	severity := protocol.DiagnosticSeverityError
	source := lsName
	return append(diagnostics, protocol.Diagnostic{
		Range: protocol.Range{
			Start: positionAt(d.Text, start),
			End:   positionAt(d.Text, start+length),
		},
		Severity: &severity,
		Source:   &source,
		Message:  d.Err.Error(),
	})
}

// errorSpan returns the byte range an error should be underlined at.
func errorSpan(err error) (start, length int) {
	var (
		lexErr    *lexer.Error
		groupErr  *parser.GroupingError
		syntaxErr *parser.SyntaxError
		depthErr  *parser.DepthError
	)
	switch {
	case errors.As(err, &lexErr):
		return lexErr.Offset, lexErr.Width
	case errors.As(err, &groupErr):
		return groupErr.Offset(), 1
	case errors.As(err, &syntaxErr):
		if syntaxErr.Got != nil {
			return syntaxErr.At, syntaxErr.Got.Length
		}
		return syntaxErr.At, 0
	case errors.As(err, &depthErr):
		return depthErr.Offset, 1
	}
	return 0, 0
}

// positionAt converts a byte offset into a zero-based line and UTF-16
// character position.
func positionAt(text string, offset int) protocol.Position {
	offset = min(max(offset, 0), len(text))
	line := strings.Count(text[:offset], "\n")
	lineStart := strings.LastIndexByte(text[:offset], '\n') + 1
	character := 0
	for _, r := range text[lineStart:offset] {
		character += utf16.RuneLen(r)
	}
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(character),
	}
}

// NodeAt returns the innermost expression whose span contains the byte
// offset.
func (d *Document) NodeAt(offset int) (parser.Ref, bool) {
	for _, root := range d.Pool.Roots() {
		if !d.contains(root, offset) {
			continue
		}
		ref := root
		for {
			e := d.Pool.Get(ref)
			if e.Kind != parser.ExprBinOp {
				return ref, true
			}
			switch {
			case d.contains(e.Left, offset):
				ref = e.Left
			case d.contains(e.Right, offset):
				ref = e.Right
			default:
				return ref, true
			}
		}
	}
	return parser.Ref{}, false
}

func (d *Document) contains(ref parser.Ref, offset int) bool {
	start, end := d.Pool.Span(ref)
	return offset >= start && offset < end
}

// Hover describes the expression under pos: its kind, prefix form and
// canonical infix form.
func (d *Document) Hover(pos protocol.Position) *protocol.Hover {
	ref, ok := d.NodeAt(pos.IndexIn(d.Text))
	if !ok {
		return nil
	}
	e := d.Pool.Get(ref)
	start, end := d.Pool.Span(ref)

	var sb strings.Builder
	if e.Kind == parser.ExprLiteral {
		fmt.Fprintf(&sb, "**%s** `%s`", e.Token.Kind, e.Token.Text(d.Text))
	} else {
		prec, _ := parser.PrecedenceOf(e.Token.Kind)
		fmt.Fprintf(&sb, "**%s** `%s` (%s)\n\n", e.Token.Kind, e.Token.Text(d.Text), prec)
		fmt.Fprintf(&sb, "```\n%s\n%s\n```", format.PrefixAt(d.Pool, ref, d.Text), format.InfixAt(d.Pool, ref, d.Text))
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: sb.String(),
		},
		Range: &protocol.Range{
			Start: positionAt(d.Text, start),
			End:   positionAt(d.Text, end),
		},
	}
}
