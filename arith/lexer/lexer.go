package lexer

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"unicode"
	"unicode/utf8"
)

// ErrUnknownCharacter is matched by every *Error.
var ErrUnknownCharacter = errors.New("unknown character")

// Error reports a character that starts no token. Width is its size in
// bytes; an invalid UTF-8 byte has Char utf8.RuneError and Width 1.
type Error struct {
	Char   rune
	Offset int
	Width  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %q at offset %d", ErrUnknownCharacter, e.Char, e.Offset)
}

func (e *Error) Is(target error) bool {
	return target == ErrUnknownCharacter
}

// Stream is a pull-based token source. Next returns io.EOF once the
// source is exhausted.
type Stream interface {
	Next() (Token, error)
}

type Option func(*Lexer)

// WithSpace replaces the whitespace classification. The default skips
// only U+0020.
func WithSpace(isSpace func(rune) bool) Option {
	return func(l *Lexer) {
		l.isSpace = isSpace
	}
}

func isPlainSpace(r rune) bool {
	return r == ' '
}

// Lexer scans a source string left to right. It is not restartable: build
// a new one with New to scan again.
type Lexer struct {
	src     string
	pos     int
	isSpace func(rune) bool
	err     error
}

func New(src string, opts ...Option) *Lexer {
	l := &Lexer{
		src:     src,
		isSpace: isPlainSpace,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Offset returns the current cursor position in bytes.
func (l *Lexer) Offset() int {
	return l.pos
}

func (l *Lexer) peek() (rune, int) {
	if l.pos >= len(l.src) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(l.src[l.pos:])
}

func (l *Lexer) skipWhitespace() {
	for {
		r, w := l.peek()
		if w == 0 || !l.isSpace(r) {
			return
		}
		l.pos += w
	}
}

// scanRun advances past consecutive runes accepted by fn.
func (l *Lexer) scanRun(fn func(rune) bool) {
	for {
		r, w := l.peek()
		if w == 0 || !fn(r) {
			return
		}
		l.pos += w
	}
}

// Next returns the next token, io.EOF at the end of input, or an *Error.
// Errors are sticky.
func (l *Lexer) Next() (Token, error) {
	if l.err != nil {
		return Token{}, l.err
	}

	l.skipWhitespace()

	start := l.pos
	r, w := l.peek()
	if w == 0 {
		return Token{}, io.EOF
	}

	var kind Kind
	switch r {
	case '+':
		kind = Add
	case '-':
		kind = Sub
	case '*':
		kind = Mul
	case '/':
		kind = Div
	case '(':
		kind = LParen
	case ')':
		kind = RParen
	default:
		switch {
		case unicode.IsDigit(r):
			l.scanRun(unicode.IsDigit)
			return Token{Kind: Num, Start: start, Length: l.pos - start}, nil
		case unicode.IsLetter(r):
			l.scanRun(unicode.IsLetter)
			return Token{Kind: Ident, Start: start, Length: l.pos - start}, nil
		}
		l.err = &Error{Char: r, Offset: start, Width: w}
		return Token{}, l.err
	}

	l.pos += w
	return Token{Kind: kind, Start: start, Length: w}, nil
}

// All yields the remaining tokens. Iteration stops after the first error,
// which is yielded with a zero Token.
func (l *Lexer) All() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			tok, err := l.Next()
			if err == io.EOF {
				return
			}
			if !yield(tok, err) || err != nil {
				return
			}
		}
	}
}

// Tokenize scans all of src. On error it returns the tokens read so far.
func Tokenize(src string, opts ...Option) ([]Token, error) {
	var tokens []Token
	for tok, err := range New(src, opts...).All() {
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// SliceStream replays a pre-scanned token slice.
type SliceStream struct {
	tokens []Token
	idx    int
}

func NewSliceStream(tokens []Token) *SliceStream {
	return &SliceStream{tokens: tokens}
}

func (s *SliceStream) Next() (Token, error) {
	if s.idx >= len(s.tokens) {
		return Token{}, io.EOF
	}
	tok := s.tokens[s.idx]
	s.idx++
	return tok, nil
}
