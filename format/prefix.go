package format

import (
	"io"
	"strings"

	"github.com/zcfabra/flat-ast-interpreter/arith/parser"
)

// PrefixEncoder renders trees fully parenthesised in prefix form:
// "( + ( * 10 20 ) 30 )".
type PrefixEncoder struct {
	w   io.Writer
	src string
}

func NewPrefixEncoder(w io.Writer, src string) *PrefixEncoder {
	return &PrefixEncoder{w: w, src: src}
}

func (e *PrefixEncoder) Encode(pool *parser.Pool) error {
	text, err := Prefix(pool, e.src)
	if err != nil {
		return err
	}
	_, err = io.WriteString(e.w, text+"\n")
	return err
}

func (e *PrefixEncoder) EncodeAll(pool *parser.Pool) error {
	lines, err := PrefixAll(pool, e.src)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := io.WriteString(e.w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// Prefix renders the pool's root. It returns parser.ErrEmptyTree for an
// empty pool.
func Prefix(pool *parser.Pool, src string) (string, error) {
	root, err := pool.Root()
	if err != nil {
		return "", err
	}
	return PrefixAt(pool, root, src), nil
}

// PrefixAll renders every top-level expression in parse order.
func PrefixAll(pool *parser.Pool, src string) ([]string, error) {
	roots := pool.Roots()
	if len(roots) == 0 {
		return nil, parser.ErrEmptyTree
	}
	lines := make([]string, len(roots))
	for i, r := range roots {
		lines[i] = PrefixAt(pool, r, src)
	}
	return lines, nil
}

// PrefixAt renders the subtree at ref.
func PrefixAt(pool *parser.Pool, ref parser.Ref, src string) string {
	var sb strings.Builder
	writePrefix(&sb, pool, ref, src)
	return sb.String()
}

func writePrefix(sb *strings.Builder, pool *parser.Pool, ref parser.Ref, src string) {
	e := pool.Get(ref)
	if e.Kind == parser.ExprLiteral {
		sb.WriteString(e.Token.Text(src))
		return
	}
	sb.WriteString("( ")
	sb.WriteString(e.Token.Text(src))
	sb.WriteByte(' ')
	writePrefix(sb, pool, e.Left, src)
	sb.WriteByte(' ')
	writePrefix(sb, pool, e.Right, src)
	sb.WriteString(" )")
}
