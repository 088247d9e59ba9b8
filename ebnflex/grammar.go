package ebnflex

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// Start is the start production of the arithmetic grammar.
const Start = "Source"

//go:embed arith.ebnf
var arithSource string

// ArithSource returns the EBNF text of the arithmetic grammar.
func ArithSource() string {
	return arithSource
}

// ArithGrammar parses and verifies the embedded arithmetic grammar.
func ArithGrammar() (ebnf.Grammar, error) {
	grammar, err := ParseGrammar("arith.ebnf", strings.NewReader(arithSource))
	if err != nil {
		return nil, err
	}
	if err := ebnf.Verify(grammar, Start); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	return grammar, nil
}

// LoadGrammar loads an EBNF grammar from a file.
func LoadGrammar(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()
	return ParseGrammar(filename, f)
}

func ParseGrammar(filename string, r io.Reader) (ebnf.Grammar, error) {
	grammar, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return grammar, nil
}

// isLexical mirrors ebnf.Verify: productions whose name does not start
// with an upper-case letter describe tokens.
func isLexical(name string) bool {
	ch, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(ch)
}
