package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SatelliteDish/Novel/compile"
	"github.com/SatelliteDish/Novel/format"
)

func newEvalCmd(g *globals) *cobra.Command {
	var outputFormat string
	var force bool

	cmd := &cobra.Command{
		Use:   "eval <file>",
		Short: "Evaluate a Novel source and print its value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("force") {
				g.cfg.Eval.Force = force
			}

			u := compile.Compile(sourceName(args[0]), src, g.cfg.ParserOptions()...)
			v, evalErr := u.Evaluate(g.cfg.Eval.Force)

			enc, err := format.NewEncoder(pick(outputFormat, g.cfg.Output.Format), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := enc.Encode(format.UnitReport(u).WithValue(v, evalErr)); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return evalErr
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (text, json)")
	cmd.Flags().BoolVar(&force, "force", false, "evaluate even when the source has diagnostics")

	return cmd
}
