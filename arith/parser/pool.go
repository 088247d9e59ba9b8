package parser

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/zcfabra/flat-ast-interpreter/arith/lexer"
)

// ErrEmptyTree is returned when a root is requested from a pool with no
// nodes.
var ErrEmptyTree = errors.New("tree was empty")

var poolIDs atomic.Uint32

// Ref identifies a node within the pool that created it.
type Ref struct {
	pool  uint32
	index int
}

// Index returns the position of the node in its pool.
func (r Ref) Index() int {
	return r.index
}

func (r Ref) String() string {
	return fmt.Sprintf("#%d", r.index)
}

type ExprKind uint8

const (
	ExprLiteral ExprKind = iota
	ExprBinOp
)

func (k ExprKind) String() string {
	switch k {
	case ExprLiteral:
		return "Literal"
	case ExprBinOp:
		return "BinOp"
	}
	return fmt.Sprintf("ExprKind(%d)", uint8(k))
}

// Expr is a pool node. For a Literal, Token is the number or identifier
// and Left/Right are unset. For a BinOp, Token is the operator.
type Expr struct {
	Kind  ExprKind
	Token lexer.Token
	Left  Ref
	Right Ref
}

func Literal(tok lexer.Token) Expr {
	return Expr{Kind: ExprLiteral, Token: tok}
}

func BinOp(left Ref, op lexer.Token, right Ref) Expr {
	return Expr{Kind: ExprBinOp, Token: op, Left: left, Right: right}
}

// Pool is an append-only arena of expression nodes. The zero value is
// ready to use and takes its id on first use.
type Pool struct {
	id    uint32
	exprs []Expr
	roots []Ref
}

func NewPool() *Pool {
	return &Pool{id: poolIDs.Add(1)}
}

func (p *Pool) Len() int {
	return len(p.exprs)
}

// ident returns the pool id, assigning one if p is a zero Pool.
func (p *Pool) ident() uint32 {
	if p.id == 0 {
		p.id = poolIDs.Add(1)
	}
	return p.id
}

func (p *Pool) checkRef(r Ref) {
	if r.pool == 0 || r.pool != p.ident() {
		panic(fmt.Sprintf("parser: ref %v belongs to pool %d, not %d", r, r.pool, p.id))
	}
	if r.index < 0 || r.index >= len(p.exprs) {
		panic(fmt.Sprintf("parser: ref %v out of range [0,%d)", r, len(p.exprs)))
	}
}

// Push appends e and returns its Ref. The operands of a BinOp must
// already be in the pool.
func (p *Pool) Push(e Expr) Ref {
	if e.Kind == ExprBinOp {
		p.checkRef(e.Left)
		p.checkRef(e.Right)
	}
	p.exprs = append(p.exprs, e)
	return Ref{pool: p.ident(), index: len(p.exprs) - 1}
}

func (p *Pool) pushRoot(e Expr) Ref {
	ref := p.Push(e)
	p.roots = append(p.roots, ref)
	return ref
}

// Get returns the node r refers to. It panics if r was not produced by p.
func (p *Pool) Get(r Ref) Expr {
	p.checkRef(r)
	return p.exprs[r.index]
}

// At returns the Ref of the i-th node.
func (p *Pool) At(i int) Ref {
	r := Ref{pool: p.ident(), index: i}
	p.checkRef(r)
	return r
}

// Root returns the most recently pushed node, which after Parse is the
// root of the last top-level expression.
func (p *Pool) Root() (Ref, error) {
	if len(p.exprs) == 0 {
		return Ref{}, ErrEmptyTree
	}
	return Ref{pool: p.ident(), index: len(p.exprs) - 1}, nil
}

// Roots returns the root of every top-level expression in parse order.
func (p *Pool) Roots() []Ref {
	return append([]Ref(nil), p.roots...)
}

// Span returns the byte range [start, end) of the source covered by the
// subtree at r.
func (p *Pool) Span(r Ref) (start, end int) {
	e := p.Get(r)
	start, end = e.Token.Start, e.Token.End()
	if e.Kind == ExprBinOp {
		ls, le := p.Span(e.Left)
		rs, re := p.Span(e.Right)
		start = min(start, ls, rs)
		end = max(end, le, re)
	}
	return start, end
}
