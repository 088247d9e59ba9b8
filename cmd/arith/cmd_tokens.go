package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zcfabra/flat-ast-interpreter/arith/lexer"
	"github.com/zcfabra/flat-ast-interpreter/format"
)

func newTokensCmd(a *app) *cobra.Command {
	var file string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tokens [expression...]",
		Short: "Print the token stream of an expression",
		Long: `Print one token per line as KIND, start offset, byte length and text,
separated by tabs. Offsets are byte offsets into the source.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(file, args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			tokens, err := lexer.Tokenize(src, a.cfg.LexerOptions()...)
			if err != nil {
				return fmt.Errorf("tokenize: %w", err)
			}

			if asJSON {
				return format.NewTokenJSONEncoder(cmd.OutOrStdout(), src).Encode(tokens)
			}
			return format.NewTokenLineEncoder(cmd.OutOrStdout(), src).Encode(tokens)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read the expression from a file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print tokens as a JSON array")

	return cmd
}
