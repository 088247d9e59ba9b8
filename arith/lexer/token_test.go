package lexer

import (
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Add, "ADD"},
		{Sub, "SUB"},
		{Mul, "MUL"},
		{Div, "DIV"},
		{Num, "NUM"},
		{Ident, "IDENT"},
		{LParen, "LPAREN"},
		{RParen, "RPAREN"},
		{Kind(200), "Kind(200)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestKindIsOperator(t *testing.T) {
	for _, k := range []Kind{Add, Sub, Mul, Div} {
		if !k.IsOperator() {
			t.Errorf("%s.IsOperator() = false, want true", k)
		}
	}
	for _, k := range []Kind{Num, Ident, LParen, RParen} {
		if k.IsOperator() {
			t.Errorf("%s.IsOperator() = true, want false", k)
		}
	}
}

func TestTokenText(t *testing.T) {
	src := "  abc + 42"
	tests := []struct {
		tok  Token
		want string
	}{
		{Token{Kind: Ident, Start: 2, Length: 3}, "abc"},
		{Token{Kind: Add, Start: 6, Length: 1}, "+"},
		{Token{Kind: Num, Start: 8, Length: 2}, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.tok.Text(src); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
			if got := tt.tok.End(); got != tt.tok.Start+len(tt.want) {
				t.Errorf("End() = %d, want %d", got, tt.tok.Start+len(tt.want))
			}
		})
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Kind: Num, Start: 3, Length: 2}
	if got, want := tok.String(), "NUM[3:5]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTokenEquality(t *testing.T) {
	a := Token{Kind: Num, Start: 0, Length: 2}
	b := Token{Kind: Num, Start: 0, Length: 2}
	c := Token{Kind: Num, Start: 0, Length: 3}
	if a != b {
		t.Errorf("%v != %v, want equal", a, b)
	}
	if a == c {
		t.Errorf("%v == %v, want different", a, c)
	}
}
