package main

import (
	"github.com/spf13/cobra"

	"github.com/SatelliteDish/Novel/lsp"
)

func newLSPCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewServer(version, g.cfg.Check.Workers, g.cfg.ParserOptions()...)
			return server.RunStdio()
		},
	}
}
