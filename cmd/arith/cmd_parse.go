package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zcfabra/flat-ast-interpreter/arith/lexer"
	"github.com/zcfabra/flat-ast-interpreter/arith/parser"
	"github.com/zcfabra/flat-ast-interpreter/format"
)

func newParseCmd(a *app) *cobra.Command {
	var outputFormat string
	var file string
	var all bool

	cmd := &cobra.Command{
		Use:   "parse [expression...]",
		Short: "Parse expressions and print the tree",
		Long: `Parse an arithmetic expression and print its tree.

The expression is taken from the arguments, from --file, or from stdin.
By default only the last top-level expression is printed; --all prints
every one in source order.

Formats: prefix (default), infix, json (nested tree), pool (flat node dump).`,
		Example: `  arith parse '10 + (203 * 10) + aasdasd'
  arith parse --format infix '(1 + 2) * 3'
  echo '1 + 2  3 * 4' | arith parse --all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				outputFormat = a.cfg.Format
			}

			src, err := readSource(file, args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			pool, err := parser.Parse(lexer.New(src, a.cfg.LexerOptions()...), a.cfg.ParserOptions()...)
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}
			log.Debugf("parsed %d nodes, %d roots", pool.Len(), len(pool.Roots()))

			encoder, err := format.ByName(outputFormat, cmd.OutOrStdout(), src)
			if err != nil {
				return err
			}
			if all {
				return encoder.EncodeAll(pool)
			}
			return encoder.Encode(pool)
		},
	}

	cmd.Flags().StringVar(&outputFormat, "format", "prefix", "output format (prefix, infix, json, pool)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the expression from a file")
	cmd.Flags().BoolVar(&all, "all", false, "print every top-level expression")

	return cmd
}
