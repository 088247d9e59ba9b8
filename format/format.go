// Package format renders expression pools and token streams produced by
// the arith packages. Every encoder re-slices the original source to
// recover literal and operator text.
package format

import (
	"fmt"
	"io"

	"github.com/zcfabra/flat-ast-interpreter/arith/parser"
)

// Encoder writes a pool. Encode renders the root returned by Pool.Root;
// EncodeAll renders every top-level expression.
type Encoder interface {
	Encode(pool *parser.Pool) error
	EncodeAll(pool *parser.Pool) error
}

// ByName returns the encoder registered under name: prefix, infix, json
// or pool.
func ByName(name string, w io.Writer, src string) (Encoder, error) {
	switch name {
	case "prefix":
		return NewPrefixEncoder(w, src), nil
	case "infix":
		return NewInfixEncoder(w, src), nil
	case "json":
		return NewTreeJSONEncoder(w, src), nil
	case "pool":
		return NewPoolJSONEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format: %s", name)
}
