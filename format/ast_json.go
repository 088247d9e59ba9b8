package format

import (
	"encoding/json"
	"io"

	"github.com/zcfabra/flat-ast-interpreter/arith/parser"
)

// TreeJSONEncoder renders trees as nested JSON objects. Nodes carry their
// token kind, byte span and either literal text or operator plus
// children.
type TreeJSONEncoder struct {
	w   io.Writer
	src string
}

func NewTreeJSONEncoder(w io.Writer, src string) *TreeJSONEncoder {
	return &TreeJSONEncoder{w: w, src: src}
}

func (e *TreeJSONEncoder) Encode(pool *parser.Pool) error {
	root, err := pool.Root()
	if err != nil {
		return err
	}
	return e.write(treeToJSON(pool, root, e.src))
}

// EncodeAll writes a JSON array with one element per top-level
// expression.
func (e *TreeJSONEncoder) EncodeAll(pool *parser.Pool) error {
	roots := pool.Roots()
	if len(roots) == 0 {
		return parser.ErrEmptyTree
	}
	nodes := make([]*treeJSONNode, len(roots))
	for i, r := range roots {
		nodes[i] = treeToJSON(pool, r, e.src)
	}
	return e.write(nodes)
}

func (e *TreeJSONEncoder) write(v any) error {
	text, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

// MarshalText renders the subtree at ref without indentation.
func (e *TreeJSONEncoder) MarshalText(pool *parser.Pool, ref parser.Ref) ([]byte, error) {
	return json.Marshal(treeToJSON(pool, ref, e.src))
}

type treeJSONNode struct {
	Kind    string        `json:"kind"`
	Start   int           `json:"start"`
	Length  int           `json:"length"`
	Literal string        `json:"literal,omitempty"`
	Op      string        `json:"op,omitempty"`
	Left    *treeJSONNode `json:"left,omitempty"`
	Right   *treeJSONNode `json:"right,omitempty"`
}

func treeToJSON(pool *parser.Pool, ref parser.Ref, src string) *treeJSONNode {
	e := pool.Get(ref)
	start, end := pool.Span(ref)
	jn := &treeJSONNode{
		Kind:   e.Token.Kind.String(),
		Start:  start,
		Length: end - start,
	}
	if e.Kind == parser.ExprLiteral {
		jn.Literal = e.Token.Text(src)
		return jn
	}
	jn.Op = e.Token.Text(src)
	jn.Left = treeToJSON(pool, e.Left, src)
	jn.Right = treeToJSON(pool, e.Right, src)
	return jn
}
