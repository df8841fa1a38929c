package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/SatelliteDish/Novel/compile"
	"github.com/SatelliteDish/Novel/ui"
)

func newServeCmd(g *globals) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Start the browser playground",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ws *compile.Workspace
			if len(args) == 1 {
				ws = compile.NewWorkspace(args[0], g.cfg.Check.Workers, g.cfg.ParserOptions()...)
				if err := ws.ScanAll(context.Background()); err != nil {
					return fmt.Errorf("scan %s: %w", args[0], err)
				}
			}

			server, err := ui.NewServer(ws, g.cfg.ParserOptions()...)
			if err != nil {
				return fmt.Errorf("create server: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", addr)
			return http.ListenAndServe(addr, server)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "localhost:8080", "address to listen on")

	return cmd
}
