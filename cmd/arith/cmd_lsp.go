package main

import (
	"github.com/spf13/cobra"

	"github.com/zcfabra/flat-ast-interpreter/lsp"
)

func newLSPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Infof("starting language server %s", version)
			server := lsp.NewServer(version, a.cfg.ParserOptions()...)
			return server.RunStdio()
		},
	}
}
