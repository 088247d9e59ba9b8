package main

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"

	"github.com/zcfabra/flat-ast-interpreter/ebnflex"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Inspect the EBNF grammar of arithmetic expressions",
	}

	cmd.AddCommand(newGrammarPrintCmd())
	cmd.AddCommand(newGrammarCheckCmd())
	cmd.AddCommand(newGrammarRecognizeCmd())

	return cmd
}

func newGrammarPrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "Print the built-in grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), ebnflex.ArithSource())
			return err
		},
	}
}

func newGrammarCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:           "check [file]",
		Short:         "Parse and verify an EBNF grammar file (default: the built-in grammar)",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var grammar ebnf.Grammar
			var err error
			if len(args) == 0 {
				grammar, err = ebnflex.ParseGrammar("arith.ebnf", strings.NewReader(ebnflex.ArithSource()))
			} else {
				grammar, err = ebnflex.LoadGrammar(args[0])
			}
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return err
			}

			if startProduction == "" {
				return nil
			}
			if err := ebnf.Verify(grammar, startProduction); err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", ebnflex.Start, "start production for verification (if empty, only checks syntax)")

	return cmd
}

func newGrammarRecognizeCmd() *cobra.Command {
	var grammarFile string
	var startProduction string

	cmd := &cobra.Command{
		Use:   "recognize [expression...]",
		Short: "Check an expression against the grammar with the reference lexer",
		RunE: func(cmd *cobra.Command, args []string) error {
			grammar, err := ebnflex.ArithGrammar()
			if grammarFile != "" {
				grammar, err = ebnflex.LoadGrammar(grammarFile)
			}
			if err != nil {
				return err
			}

			src, err := readSource("", args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			// The reference lexer skips only U+0020.
			src = strings.TrimRight(src, "\r\n")
			tokens, err := ebnflex.NewLexer(grammar, src).Tokenize()
			if err != nil {
				return fmt.Errorf("tokenize: %w", err)
			}
			if err := ebnflex.Recognize(grammar, startProduction, src, tokens); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d tokens\n", len(tokens))
			return nil
		},
	}

	cmd.Flags().StringVar(&grammarFile, "grammar", "", "grammar file (default: the built-in grammar)")
	cmd.Flags().StringVar(&startProduction, "start", ebnflex.Start, "start production")

	return cmd
}

// printErrors prints one line per error when err wraps an error list.
func printErrors(w io.Writer, err error) {
	for e := err; e != nil; e = errors.Unwrap(e) {
		v := reflect.ValueOf(e)
		if v.Kind() == reflect.Slice {
			for i := 0; i < v.Len(); i++ {
				fmt.Fprintln(w, v.Index(i).Interface())
			}
			return
		}
	}
	fmt.Fprintln(w, err)
}
