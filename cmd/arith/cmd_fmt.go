package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zcfabra/flat-ast-interpreter/arith/lexer"
	"github.com/zcfabra/flat-ast-interpreter/arith/parser"
	"github.com/zcfabra/flat-ast-interpreter/format"
)

func newFmtCmd(a *app) *cobra.Command {
	var fmtOverwrite bool

	cmd := &cobra.Command{
		Use:   "fmt [file...]",
		Short: "Rewrite .arith files in canonical infix form",
		Long: `Print each top-level expression on its own line in canonical infix
form: single spaces around operators and parentheses only where
precedence or left associativity requires them.

Files must have a .arith extension. With no files, reads stdin.

Use -w to overwrite the files in place.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				if fmtOverwrite {
					return fmt.Errorf("-w requires a file argument")
				}
				source, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				output, err := a.formatSource(string(source))
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(output)
				return err
			}

			for _, filename := range args {
				if ext := filepath.Ext(filename); ext != ".arith" {
					return fmt.Errorf("expected .arith file, got %s", filename)
				}
				source, err := os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}
				output, err := a.formatSource(string(source))
				if err != nil {
					return fmt.Errorf("%s: %w", filename, err)
				}
				if fmtOverwrite {
					if bytes.Equal(source, output) {
						continue
					}
					log.Infof("rewriting %s", filename)
					if err := os.WriteFile(filename, output, 0644); err != nil {
						return err
					}
					continue
				}
				if _, err := cmd.OutOrStdout().Write(output); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "overwrite the file(s) instead of printing")

	return cmd
}

// formatSource renders every expression in src in canonical infix form.
// Empty input formats to empty output.
func (a *app) formatSource(src string) ([]byte, error) {
	pool, err := parser.Parse(lexer.New(src, a.cfg.LexerOptions()...), a.cfg.ParserOptions()...)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if len(pool.Roots()) == 0 {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := format.NewInfixEncoder(&buf, src).EncodeAll(pool); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
