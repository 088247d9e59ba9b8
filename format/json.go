package format

import (
	"encoding/json"
	"io"

	"github.com/zcfabra/flat-ast-interpreter/arith/parser"
)

// PoolJSONEncoder dumps the flat pool as stored: nodes by index with
// child references, plus the list of roots.
type PoolJSONEncoder struct {
	w io.Writer
}

func NewPoolJSONEncoder(w io.Writer) *PoolJSONEncoder {
	return &PoolJSONEncoder{w: w}
}

func (e *PoolJSONEncoder) Encode(pool *parser.Pool) error {
	if pool.Len() == 0 {
		return parser.ErrEmptyTree
	}
	text, err := e.MarshalText(pool)
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

// EncodeAll is Encode: the dump already contains every root.
func (e *PoolJSONEncoder) EncodeAll(pool *parser.Pool) error {
	return e.Encode(pool)
}

func (e *PoolJSONEncoder) MarshalText(pool *parser.Pool) ([]byte, error) {
	return json.MarshalIndent(pool, "", "  ")
}
