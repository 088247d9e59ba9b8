// Package ebnflex drives lexing and recognition from an EBNF grammar. It
// is a slow reference implementation used to cross-check the hand-written
// arith lexer and parser against arith.ebnf.
package ebnflex

import (
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"

	"github.com/zcfabra/flat-ast-interpreter/arith/lexer"
)

// Production binds a lexical production of the grammar to a token kind.
type Production struct {
	Name string
	Kind lexer.Kind
}

// Productions lists the token productions in match order. On equal match
// length the earlier entry wins.
var Productions = []Production{
	{"add", lexer.Add},
	{"sub", lexer.Sub},
	{"mul", lexer.Mul},
	{"div", lexer.Div},
	{"lparen", lexer.LParen},
	{"rparen", lexer.RParen},
	{"num", lexer.Num},
	{"ident", lexer.Ident},
}

func kindOf(name string) (lexer.Kind, bool) {
	for _, p := range Productions {
		if p.Name == name {
			return p.Kind, true
		}
	}
	return 0, false
}

// memoKey is used for memoization of match results.
type memoKey struct {
	name   string
	offset int
}

// Lexer tokenizes input by longest match over the grammar's token
// productions. It implements lexer.Stream.
type Lexer struct {
	grammar  ebnf.Grammar
	src      string
	pos      int
	err      error
	memo     map[memoKey]int  // match length, -1 = no match
	visiting map[memoKey]bool // cycle detection
}

func NewLexer(grammar ebnf.Grammar, src string) *Lexer {
	return &Lexer{
		grammar:  grammar,
		src:      src,
		memo:     make(map[memoKey]int),
		visiting: make(map[memoKey]bool),
	}
}

// Next returns the next token. Spaces between tokens are skipped. Input
// that no production matches yields a *lexer.Error, which is sticky.
func (l *Lexer) Next() (lexer.Token, error) {
	if l.err != nil {
		return lexer.Token{}, l.err
	}
	for l.pos < len(l.src) && l.src[l.pos] == ' ' {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return lexer.Token{}, io.EOF
	}

	start := l.pos
	// Offsets move between tokens, so cached lengths are stale.
	clear(l.memo)

	var best Production
	bestLen := 0
	for _, p := range Productions {
		prod, ok := l.grammar[p.Name]
		if !ok || prod.Expr == nil {
			continue
		}
		clear(l.visiting)
		if n := l.tryMatch(prod.Expr, start); n > bestLen {
			bestLen = n
			best = p
		}
	}

	if bestLen == 0 {
		r, w := utf8.DecodeRuneInString(l.src[start:])
		l.err = &lexer.Error{Char: r, Offset: start, Width: w}
		return lexer.Token{}, l.err
	}

	l.pos += bestLen
	return lexer.Token{Kind: best.Kind, Start: start, Length: bestLen}, nil
}

// Tokenize reads all tokens. On error the tokens read so far are
// returned with it.
func (l *Lexer) Tokenize() ([]lexer.Token, error) {
	var tokens []lexer.Token
	for {
		tok, err := l.Next()
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
}

// tryMatch returns the length of the match at offset, or -1. A zero
// length is a successful empty match.
func (l *Lexer) tryMatch(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case nil:
		return 0

	case *ebnf.Token:
		if strings.HasPrefix(l.src[offset:], e.String) {
			return len(e.String)
		}
		return -1

	case *ebnf.Range:
		return l.tryMatchRange(e.Begin.String, e.End.String, offset)

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := l.tryMatch(item, offset+total)
			if n < 0 {
				return -1
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := -1
		for _, alt := range e {
			best = max(best, l.tryMatch(alt, offset))
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			// An empty body match would loop forever.
			n := l.tryMatch(e.Body, offset+total)
			if n <= 0 {
				return total
			}
			total += n
		}

	case *ebnf.Option:
		return max(l.tryMatch(e.Body, offset), 0)

	case *ebnf.Group:
		return l.tryMatch(e.Body, offset)

	case *ebnf.Name:
		return l.tryMatchName(e.String, offset)

	default:
		return -1
	}
}

// tryMatchName matches a named production with memoization and cycle detection.
func (l *Lexer) tryMatchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}
	if result, ok := l.memo[key]; ok {
		return result
	}
	// Left recursion.
	if l.visiting[key] {
		return -1
	}

	prod, ok := l.grammar[name]
	if !ok {
		l.memo[key] = -1
		return -1
	}

	l.visiting[key] = true
	result := l.tryMatch(prod.Expr, offset)
	delete(l.visiting, key)

	l.memo[key] = result
	return result
}

// tryMatchRange matches a single rune in [begin, end].
func (l *Lexer) tryMatchRange(begin, end string, offset int) int {
	if offset >= len(l.src) {
		return -1
	}
	lo, _ := utf8.DecodeRuneInString(begin)
	hi, _ := utf8.DecodeRuneInString(end)
	r, size := utf8.DecodeRuneInString(l.src[offset:])
	if r >= lo && r <= hi {
		return size
	}
	return -1
}
