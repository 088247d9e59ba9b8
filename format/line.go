package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/zcfabra/flat-ast-interpreter/arith/lexer"
)

// TokenLineEncoder writes one token per line as
// KIND<TAB>start<TAB>length<TAB>text.
type TokenLineEncoder struct {
	w   io.Writer
	src string
}

func NewTokenLineEncoder(w io.Writer, src string) *TokenLineEncoder {
	return &TokenLineEncoder{w: w, src: src}
}

func (e *TokenLineEncoder) Encode(tokens []lexer.Token) error {
	text, err := e.MarshalText(tokens)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TokenLineEncoder) MarshalText(tokens []lexer.Token) ([]byte, error) {
	var sb strings.Builder
	for _, tok := range tokens {
		fmt.Fprintf(&sb, "%s\t%d\t%d\t%s\n", tok.Kind, tok.Start, tok.Length, tok.Text(e.src))
	}
	return []byte(sb.String()), nil
}

// TokenJSONEncoder writes tokens as a JSON array.
type TokenJSONEncoder struct {
	w   io.Writer
	src string
}

func NewTokenJSONEncoder(w io.Writer, src string) *TokenJSONEncoder {
	return &TokenJSONEncoder{w: w, src: src}
}

type tokenJSON struct {
	Kind   string `json:"kind"`
	Start  int    `json:"start"`
	Length int    `json:"length"`
	Text   string `json:"text"`
}

func (e *TokenJSONEncoder) Encode(tokens []lexer.Token) error {
	text, err := e.MarshalText(tokens)
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *TokenJSONEncoder) MarshalText(tokens []lexer.Token) ([]byte, error) {
	out := make([]tokenJSON, len(tokens))
	for i, tok := range tokens {
		out[i] = tokenJSON{
			Kind:   tok.Kind.String(),
			Start:  tok.Start,
			Length: tok.Length,
			Text:   tok.Text(e.src),
		}
	}
	return json.MarshalIndent(out, "", "  ")
}
