package format

import (
	"io"
	"strings"

	"github.com/zcfabra/flat-ast-interpreter/arith/parser"
)

// InfixEncoder renders trees in canonical infix form: one space around
// each operator and parentheses only where precedence or left
// associativity needs them.
type InfixEncoder struct {
	w   io.Writer
	src string
}

func NewInfixEncoder(w io.Writer, src string) *InfixEncoder {
	return &InfixEncoder{w: w, src: src}
}

func (e *InfixEncoder) Encode(pool *parser.Pool) error {
	root, err := pool.Root()
	if err != nil {
		return err
	}
	_, err = io.WriteString(e.w, InfixAt(pool, root, e.src)+"\n")
	return err
}

func (e *InfixEncoder) EncodeAll(pool *parser.Pool) error {
	roots := pool.Roots()
	if len(roots) == 0 {
		return parser.ErrEmptyTree
	}
	for _, r := range roots {
		if _, err := io.WriteString(e.w, InfixAt(pool, r, e.src)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// Infix renders the pool's root.
func Infix(pool *parser.Pool, src string) (string, error) {
	root, err := pool.Root()
	if err != nil {
		return "", err
	}
	return InfixAt(pool, root, src), nil
}

func InfixAt(pool *parser.Pool, ref parser.Ref, src string) string {
	var sb strings.Builder
	writeInfix(&sb, pool, ref, src)
	return sb.String()
}

func writeInfix(sb *strings.Builder, pool *parser.Pool, ref parser.Ref, src string) {
	e := pool.Get(ref)
	if e.Kind == parser.ExprLiteral {
		sb.WriteString(e.Token.Text(src))
		return
	}
	prec, _ := parser.PrecedenceOf(e.Token.Kind)
	writeOperand(sb, pool, e.Left, prec, false, src)
	sb.WriteByte(' ')
	sb.WriteString(e.Token.Text(src))
	sb.WriteByte(' ')
	writeOperand(sb, pool, e.Right, prec, true, src)
}

func writeOperand(sb *strings.Builder, pool *parser.Pool, ref parser.Ref, parent parser.Precedence, right bool, src string) {
	e := pool.Get(ref)
	wrap := false
	if e.Kind == parser.ExprBinOp {
		prec, _ := parser.PrecedenceOf(e.Token.Kind)
		wrap = prec < parent || (right && prec == parent)
	}
	if wrap {
		sb.WriteByte('(')
	}
	writeInfix(sb, pool, ref, src)
	if wrap {
		sb.WriteByte(')')
	}
}
