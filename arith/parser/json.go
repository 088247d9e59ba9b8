package parser

import "encoding/json"

type jsonPool struct {
	Nodes []jsonExpr `json:"nodes"`
	Roots []int      `json:"roots"`
}

type jsonExpr struct {
	Index int       `json:"index"`
	Kind  string    `json:"kind"`
	Token jsonToken `json:"token"`
	Left  *int      `json:"left,omitempty"`
	Right *int      `json:"right,omitempty"`
}

type jsonToken struct {
	Kind   string `json:"kind"`
	Start  int    `json:"start"`
	Length int    `json:"length"`
}

func (p *Pool) MarshalJSON() ([]byte, error) {
	jp := jsonPool{
		Nodes: make([]jsonExpr, len(p.exprs)),
		Roots: make([]int, len(p.roots)),
	}
	for i, e := range p.exprs {
		je := jsonExpr{
			Index: i,
			Kind:  e.Kind.String(),
			Token: jsonToken{
				Kind:   e.Token.Kind.String(),
				Start:  e.Token.Start,
				Length: e.Token.Length,
			},
		}
		if e.Kind == ExprBinOp {
			left, right := e.Left.index, e.Right.index
			je.Left = &left
			je.Right = &right
		}
		jp.Nodes[i] = je
	}
	for i, r := range p.roots {
		jp.Roots[i] = r.index
	}
	return json.Marshal(jp)
}
