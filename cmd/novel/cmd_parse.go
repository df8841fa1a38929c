package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SatelliteDish/Novel/compile"
	"github.com/SatelliteDish/Novel/format"
)

func newParseCmd(g *globals) *cobra.Command {
	var outputFormat string
	var includePositions bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a Novel source and dump the tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}

			u := compile.Compile(sourceName(args[0]), src, g.cfg.ParserOptions()...)
			var enc format.Encoder
			name := pick(outputFormat, g.cfg.Output.Format)
			if includePositions && name == "text" {
				enc = format.NewLineEncoder(cmd.OutOrStdout(), format.WithPositions())
			} else if enc, err = format.NewEncoder(name, cmd.OutOrStdout()); err != nil {
				return err
			}
			if err := enc.Encode(format.UnitReport(u)); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if !u.OK() {
				return fmt.Errorf("%s: %w", u.Name, compile.ErrHasDiagnostics)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (text, json)")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "include node positions in text output")

	return cmd
}
