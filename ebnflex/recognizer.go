package ebnflex

import (
	"fmt"
	"slices"

	"golang.org/x/exp/ebnf"

	"github.com/zcfabra/flat-ast-interpreter/arith/lexer"
)

// RecognizeError reports a token sequence the grammar does not derive.
// Got is nil when the input ended early.
type RecognizeError struct {
	Start  string
	Offset int
	Got    *lexer.Token
}

func (e *RecognizeError) Error() string {
	if e.Got == nil {
		return fmt.Sprintf("%s: unexpected end of input at offset %d", e.Start, e.Offset)
	}
	return fmt.Sprintf("%s: unexpected %s at offset %d", e.Start, e.Got.Kind, e.Offset)
}

// Recognize reports whether tokens derive from the start production.
// Lexical productions named in Productions match one token of their kind;
// quoted literals in syntactic productions match a token by its text.
func Recognize(grammar ebnf.Grammar, start, src string, tokens []lexer.Token) error {
	r := &recognizer{
		grammar:  grammar,
		src:      src,
		tokens:   tokens,
		memo:     make(map[memoKey][]int),
		visiting: make(map[memoKey]bool),
	}
	ends := r.matchName(start, 0)
	if slices.Contains(ends, len(tokens)) {
		return nil
	}

	err := &RecognizeError{Start: start}
	if r.furthest < len(tokens) {
		tok := tokens[r.furthest]
		err.Got = &tok
		err.Offset = tok.Start
	} else if len(tokens) > 0 {
		err.Offset = tokens[len(tokens)-1].End()
	}
	return err
}

// recognizer computes, for an expression and a token index, every index
// at which a match can end.
type recognizer struct {
	grammar  ebnf.Grammar
	src      string
	tokens   []lexer.Token
	memo     map[memoKey][]int
	visiting map[memoKey]bool
	furthest int
}

func (r *recognizer) reach(pos int) {
	r.furthest = max(r.furthest, pos)
}

func (r *recognizer) match(expr ebnf.Expression, pos int) []int {
	switch e := expr.(type) {
	case nil:
		return []int{pos}

	case *ebnf.Token:
		if pos < len(r.tokens) && r.tokens[pos].Text(r.src) == e.String {
			r.reach(pos + 1)
			return []int{pos + 1}
		}
		return nil

	case ebnf.Sequence:
		cur := []int{pos}
		for _, item := range e {
			var next []int
			for _, p := range cur {
				next = union(next, r.match(item, p))
			}
			if len(next) == 0 {
				return nil
			}
			cur = next
		}
		return cur

	case ebnf.Alternative:
		var out []int
		for _, alt := range e {
			out = union(out, r.match(alt, pos))
		}
		return out

	case *ebnf.Repetition:
		out := []int{pos}
		frontier := []int{pos}
		for len(frontier) > 0 {
			var next []int
			for _, p := range frontier {
				for _, end := range r.match(e.Body, p) {
					if !slices.Contains(out, end) {
						next = union(next, []int{end})
					}
				}
			}
			out = union(out, next)
			frontier = next
		}
		return out

	case *ebnf.Option:
		return union([]int{pos}, r.match(e.Body, pos))

	case *ebnf.Group:
		return r.match(e.Body, pos)

	case *ebnf.Name:
		return r.matchName(e.String, pos)

	default:
		return nil
	}
}

func (r *recognizer) matchName(name string, pos int) []int {
	if isLexical(name) {
		kind, ok := kindOf(name)
		if ok && pos < len(r.tokens) && r.tokens[pos].Kind == kind {
			r.reach(pos + 1)
			return []int{pos + 1}
		}
		return nil
	}

	key := memoKey{name: name, offset: pos}
	if ends, ok := r.memo[key]; ok {
		return ends
	}
	// Left recursion.
	if r.visiting[key] {
		return nil
	}
	prod, ok := r.grammar[name]
	if !ok {
		return nil
	}

	r.visiting[key] = true
	ends := r.match(prod.Expr, pos)
	delete(r.visiting, key)
	r.memo[key] = ends
	return ends
}

// union merges two sorted sets of indexes.
func union(a, b []int) []int {
	out := append(slices.Clone(a), b...)
	slices.Sort(out)
	return slices.Compact(out)
}
