package parser

import (
	"io"

	"github.com/zcfabra/flat-ast-interpreter/arith/lexer"
)

// Precedence orders operator binding strength.
type Precedence int

const (
	Lowest Precedence = iota
	AddSub
	MulDiv
)

func (p Precedence) String() string {
	switch p {
	case Lowest:
		return "LOWEST"
	case AddSub:
		return "ADDSUB"
	case MulDiv:
		return "MULDIV"
	}
	return "UNKNOWN"
}

// PrecedenceOf returns the precedence of an operator kind. ok is false for
// non-operators.
func PrecedenceOf(k lexer.Kind) (prec Precedence, ok bool) {
	switch k {
	case lexer.Add, lexer.Sub:
		return AddSub, true
	case lexer.Mul, lexer.Div:
		return MulDiv, true
	}
	return Lowest, false
}

type Option func(*Parser)

// WithMaxDepth limits how deeply parentheses may nest. Zero means no
// limit.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// WithPool makes the parser append to an existing pool instead of a new
// one.
func WithPool(pool *Pool) Option {
	return func(p *Parser) {
		p.pool = pool
	}
}

type Parser struct {
	tokens   lexer.Stream
	pool     *Pool
	maxDepth int
	depth    int

	peeked  *lexer.Token
	lastEnd int
}

func New(tokens lexer.Stream, opts ...Option) *Parser {
	p := &Parser{tokens: tokens}
	for _, opt := range opts {
		opt(p)
	}
	if p.pool == nil {
		p.pool = NewPool()
	}
	return p
}

// Parse reads top-level expressions until the stream is exhausted and
// returns the pool holding them. On error the partially built pool is
// returned as well.
func Parse(tokens lexer.Stream, opts ...Option) (*Pool, error) {
	p := New(tokens, opts...)
	err := p.ParseAll()
	return p.pool, err
}

// ParseString tokenises src with default lexer settings and parses it.
func ParseString(src string, opts ...Option) (*Pool, error) {
	return Parse(lexer.New(src), opts...)
}

func (p *Parser) Pool() *Pool {
	return p.pool
}

func (p *Parser) ParseAll() error {
	for {
		_, ok, err := p.ParseNext()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

// ParseNext parses one top-level expression and pushes it as a root. ok is
// false once the stream is exhausted.
func (p *Parser) ParseNext() (Ref, bool, error) {
	expr, ok, err := p.parseExpr(Lowest)
	if err != nil || !ok {
		return Ref{}, false, err
	}
	return p.pool.pushRoot(expr), true, nil
}

func (p *Parser) peek() (lexer.Token, bool, error) {
	if p.peeked != nil {
		return *p.peeked, true, nil
	}
	tok, err := p.tokens.Next()
	if err == io.EOF {
		return lexer.Token{}, false, nil
	}
	if err != nil {
		return lexer.Token{}, false, err
	}
	p.peeked = &tok
	return tok, true, nil
}

func (p *Parser) advance() (lexer.Token, bool, error) {
	tok, ok, err := p.peek()
	if ok {
		p.peeked = nil
		p.lastEnd = tok.End()
	}
	return tok, ok, err
}

func (p *Parser) syntaxError(msg string, got *lexer.Token) *SyntaxError {
	at := p.lastEnd
	if got != nil {
		at = got.Start
	}
	return &SyntaxError{Message: msg, Got: got, At: at}
}

// parseExpr parses an operand followed by every operator whose precedence
// is at least floor. The result is not pushed; the caller owns that.
func (p *Parser) parseExpr(floor Precedence) (Expr, bool, error) {
	head, ok, err := p.advance()
	if err != nil || !ok {
		return Expr{}, false, err
	}

	var lhs Expr
	switch head.Kind {
	case lexer.Num, lexer.Ident:
		lhs = Literal(head)
	case lexer.LParen:
		lhs, err = p.parseGroup(head)
		if err != nil {
			return Expr{}, false, err
		}
	case lexer.RParen:
		return Expr{}, false, &GroupingError{Close: &head}
	default:
		return Expr{}, false, p.syntaxError("expected operand before operator", &head)
	}

	for {
		next, ok, err := p.peek()
		if err != nil {
			return Expr{}, false, err
		}
		if !ok {
			break
		}
		prec, isOp := PrecedenceOf(next.Kind)
		if !isOp || prec < floor {
			break
		}
		op, _, _ := p.advance()

		operand, ok, err := p.peek()
		if err != nil {
			return Expr{}, false, err
		}
		if !ok || operand.Kind == lexer.RParen {
			var got *lexer.Token
			if ok {
				got = &operand
			}
			return Expr{}, false, p.syntaxError("expected operand after "+op.Kind.String(), got)
		}

		left := p.pool.Push(lhs)
		rhs, _, err := p.parseExpr(prec + 1)
		if err != nil {
			return Expr{}, false, err
		}
		right := p.pool.Push(rhs)
		lhs = BinOp(left, op, right)
	}

	return lhs, true, nil
}

// parseGroup parses the inside of a parenthesised expression and consumes
// its closing ")".
func (p *Parser) parseGroup(open lexer.Token) (Expr, error) {
	if p.maxDepth > 0 && p.depth >= p.maxDepth {
		return Expr{}, &DepthError{Limit: p.maxDepth, Offset: open.Start}
	}
	p.depth++
	defer func() { p.depth-- }()

	next, ok, err := p.peek()
	if err != nil {
		return Expr{}, err
	}
	if ok && next.Kind == lexer.RParen {
		return Expr{}, p.syntaxError("expected expression inside parentheses", &next)
	}
	inner, ok, err := p.parseExpr(Lowest)
	if err != nil {
		return Expr{}, err
	}
	if !ok {
		return Expr{}, &GroupingError{Open: &open}
	}
	closing, ok, err := p.advance()
	if err != nil {
		return Expr{}, err
	}
	if !ok {
		return Expr{}, &GroupingError{Open: &open}
	}
	if closing.Kind != lexer.RParen {
		return Expr{}, &GroupingError{Open: &open, Got: &closing}
	}
	return inner, nil
}
