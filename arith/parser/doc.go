// Package parser builds expression trees from a lexer.Stream using
// precedence climbing.
//
// # Pool
//
// Nodes are not linked by pointers. Every node lives in a Pool, an
// append-only arena, and refers to its operands through Ref values that
// index into that pool:
//
//	src:   10 * 20 + 30
//
//	index  node
//	0      Literal 10
//	1      Literal 20
//	2      BinOp   0 * 1
//	3      Literal 30
//	4      BinOp   2 + 3      <- root
//
// Children are always pushed before the parent that references them. A
// Ref is only meaningful for the pool that produced it; Get panics when
// handed a Ref from another pool.
//
// # Roots
//
// Parse keeps reading top-level expressions until the stream is
// exhausted, so "1 + 2  3 * 4" yields two trees in one pool. The last
// pushed node is the root of the last expression and is what Root
// returns. Earlier trees stay in the pool; they are no longer reachable
// from Root, but Roots lists every top-level root in source order.
//
// # Grammar
//
//	Source     = { Expression } .
//	Expression = Operand { Operator Operand } .
//	Operand    = Num | Ident | "(" Expression ")" .
//	Operator   = "+" | "-" | "*" | "/" .
//
// "*" and "/" bind tighter than "+" and "-". Operators of equal
// precedence associate to the left. There are no unary operators: a
// leading "-" is a syntax error.
//
// # Errors
//
// Lexical errors from the stream are returned as is (see lexer.Error).
// Unbalanced parentheses yield a *GroupingError, misplaced or dangling
// operators a *SyntaxError. Parsing stops at the first error; the pool
// built so far is returned with it.
//
// A Pool and its Parser are not safe for concurrent use.
package parser
