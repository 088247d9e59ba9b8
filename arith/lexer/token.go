package lexer

import "fmt"

// Kind classifies a token. The set is closed.
type Kind uint8

const (
	Add Kind = iota
	Sub
	Mul
	Div

	Num
	Ident

	LParen
	RParen
)

var kindNames = map[Kind]string{
	Add:    "ADD",
	Sub:    "SUB",
	Mul:    "MUL",
	Div:    "DIV",
	Num:    "NUM",
	Ident:  "IDENT",
	LParen: "LPAREN",
	RParen: "RPAREN",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsOperator reports whether k is one of the four binary operators.
func (k Kind) IsOperator() bool {
	switch k {
	case Add, Sub, Mul, Div:
		return true
	}
	return false
}

// Token is a classified span of the source. It never owns text; consumers
// slice the original source with Text.
type Token struct {
	Kind   Kind
	Start  int
	Length int
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Start + t.Length
}

// Text returns the source text covered by t.
func (t Token) Text(src string) string {
	return src[t.Start:t.End()]
}

func (t Token) String() string {
	return fmt.Sprintf("%s[%d:%d]", t.Kind, t.Start, t.End())
}
