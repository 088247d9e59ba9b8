package lexer

import (
	"errors"
	"io"
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

func tok(kind Kind, start, length int) Token {
	return Token{Kind: kind, Start: start, Length: length}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{"empty", "", nil},
		{"only spaces", "     ", nil},
		{
			"operators",
			"++--**//",
			[]Token{
				tok(Add, 0, 1), tok(Add, 1, 1),
				tok(Sub, 2, 1), tok(Sub, 3, 1),
				tok(Mul, 4, 1), tok(Mul, 5, 1),
				tok(Div, 6, 1), tok(Div, 7, 1),
			},
		},
		{
			"ident and number",
			"abcabc*123123",
			[]Token{tok(Ident, 0, 6), tok(Mul, 6, 1), tok(Num, 7, 6)},
		},
		{
			"mixed arithmetic",
			"10*20-30+40/50",
			[]Token{
				tok(Num, 0, 2), tok(Mul, 2, 1), tok(Num, 3, 2),
				tok(Sub, 5, 1), tok(Num, 6, 2), tok(Add, 8, 1),
				tok(Num, 9, 2), tok(Div, 11, 1), tok(Num, 12, 2),
			},
		},
		{
			"whitespace is transparent to offsets",
			"          10          +          10          ",
			[]Token{tok(Num, 10, 2), tok(Add, 22, 1), tok(Num, 33, 2)},
		},
		{
			"nested parens",
			"(((())))",
			[]Token{
				tok(LParen, 0, 1), tok(LParen, 1, 1), tok(LParen, 2, 1), tok(LParen, 3, 1),
				tok(RParen, 4, 1), tok(RParen, 5, 1), tok(RParen, 6, 1), tok(RParen, 7, 1),
			},
		},
		{
			"letters then digits split",
			"abc123",
			[]Token{tok(Ident, 0, 3), tok(Num, 3, 3)},
		},
		{
			"digits then letters split",
			"123abc",
			[]Token{tok(Num, 0, 3), tok(Ident, 3, 3)},
		},
		{
			"multi-byte letters",
			"héllo + x",
			[]Token{tok(Ident, 0, 6), tok(Add, 7, 1), tok(Ident, 9, 1)},
		},
		{
			"non-ASCII digits",
			"٣٤ * 2",
			[]Token{tok(Num, 0, 4), tok(Mul, 5, 1), tok(Num, 7, 1)},
		},
		{
			"grouped expression",
			"10 + (203 * 10) + aasdasd",
			[]Token{
				tok(Num, 0, 2), tok(Add, 3, 1), tok(LParen, 5, 1),
				tok(Num, 6, 3), tok(Mul, 10, 1), tok(Num, 12, 2),
				tok(RParen, 14, 1), tok(Add, 16, 1), tok(Ident, 18, 7),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
			for _, tk := range got {
				if text := tk.Text(tt.input); strings.ContainsRune(text, ' ') {
					t.Errorf("token %v spans whitespace: %q", tk, text)
				}
			}
		})
	}
}

func TestTokenizeSingleCharacterTokens(t *testing.T) {
	inputs := []string{
		"+ - * / ( )",
		"  ((  ))  ",
		"*/+-",
		" ) ( ",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got, err := Tokenize(input)
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", input, err)
			}
			want := len(strings.ReplaceAll(input, " ", ""))
			if len(got) != want {
				t.Fatalf("got %d tokens, want %d", len(got), want)
			}
			for _, tk := range got {
				if tk.Length != 1 {
					t.Errorf("token %v has length %d, want 1", tk, tk.Length)
				}
			}
		})
	}
}

func TestTokenizeDigitRuns(t *testing.T) {
	for n := 1; n <= 12; n++ {
		input := "x + " + strings.Repeat("7", n) + " - y"
		got, err := Tokenize(input)
		if err != nil {
			t.Fatalf("Tokenize(%q) error: %v", input, err)
		}
		var nums []Token
		for _, tk := range got {
			if tk.Kind == Num {
				nums = append(nums, tk)
			}
		}
		if len(nums) != 1 || nums[0].Length != n {
			t.Errorf("Tokenize(%q) numbers = %v, want one NUM of length %d", input, nums, n)
		}
	}
}

func TestTokenizeIsDeterministic(t *testing.T) {
	input := "alpha * (beta - 12) / 7 + gamma"
	first, err := Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := Tokenize(input)
		if err != nil {
			t.Fatalf("Tokenize error: %v", err)
		}
		if diff := cmp.Diff(first, again); diff != "" {
			t.Errorf("run %d differs (-first +again):\n%s", i, diff)
		}
	}
}

func TestTokenizeUnknownCharacter(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		tokens []Token
		char   rune
		offset int
		width  int
	}{
		{"dollar", "10 $ 5", []Token{tok(Num, 0, 2)}, '$', 3, 1},
		{"tab by default", "1\t2", []Token{tok(Num, 0, 1)}, '\t', 1, 1},
		{"newline by default", "1\n", []Token{tok(Num, 0, 1)}, '\n', 1, 1},
		{"leading", "%", nil, '%', 0, 1},
		{"after multi-byte ident", "é?", []Token{tok(Ident, 0, 2)}, '?', 2, 1},
		{"multi-byte symbol", "1 €", []Token{tok(Num, 0, 1)}, '€', 2, 3},
		{"invalid utf-8 byte", "1 \xff23", []Token{tok(Num, 0, 1)}, utf8.RuneError, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.input)
			if diff := cmp.Diff(tt.tokens, got); diff != "" {
				t.Errorf("tokens before error mismatch (-want +got):\n%s", diff)
			}
			if !errors.Is(err, ErrUnknownCharacter) {
				t.Fatalf("error = %v, want ErrUnknownCharacter", err)
			}
			var lexErr *Error
			if !errors.As(err, &lexErr) {
				t.Fatalf("error %T is not *Error", err)
			}
			if lexErr.Char != tt.char || lexErr.Offset != tt.offset || lexErr.Width != tt.width {
				t.Errorf("error = {%q, %d, %d}, want {%q, %d, %d}",
					lexErr.Char, lexErr.Offset, lexErr.Width, tt.char, tt.offset, tt.width)
			}
		})
	}
}

func TestLexerErrorIsSticky(t *testing.T) {
	l := New("# 1")
	_, first := l.Next()
	if first == nil {
		t.Fatal("expected error")
	}
	_, second := l.Next()
	if second != first {
		t.Errorf("second error = %v, want %v", second, first)
	}
}

func TestLexerEOFRepeats(t *testing.T) {
	l := New("7")
	if _, err := l.Next(); err != nil {
		t.Fatalf("Next error: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := l.Next(); err != io.EOF {
			t.Fatalf("Next #%d error = %v, want io.EOF", i, err)
		}
	}
	if got := l.Offset(); got != 1 {
		t.Errorf("Offset() = %d, want 1", got)
	}
}

func TestWithSpace(t *testing.T) {
	got, err := Tokenize("1\n+\t2\r\n", WithSpace(unicode.IsSpace))
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	want := []Token{tok(Num, 0, 1), tok(Add, 2, 1), tok(Num, 4, 1)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestAllStopsEarly(t *testing.T) {
	var got []Token
	for tk, err := range New("1 + 2 + 3").All() {
		if err != nil {
			t.Fatalf("All error: %v", err)
		}
		got = append(got, tk)
		if len(got) == 2 {
			break
		}
	}
	if len(got) != 2 {
		t.Errorf("got %d tokens, want 2", len(got))
	}
}

func TestSliceStream(t *testing.T) {
	tokens := []Token{tok(Num, 0, 1), tok(Add, 1, 1), tok(Num, 2, 1)}
	s := NewSliceStream(tokens)
	var got []Token
	for {
		tk, err := s.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next error: %v", err)
		}
		got = append(got, tk)
	}
	if diff := cmp.Diff(tokens, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
