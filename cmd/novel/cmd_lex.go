package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SatelliteDish/Novel/compile"
	"github.com/SatelliteDish/Novel/format"
	"github.com/SatelliteDish/Novel/syntax"
)

func newLexCmd(g *globals) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "lex <file>",
		Short: "Print the tokens of a Novel source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			name := sourceName(args[0])

			tokens, diags := syntax.Tokenize(src, syntax.WithLexerStartLine(g.cfg.Parser.StartLine))
			enc, err := format.NewEncoder(pick(outputFormat, g.cfg.Output.Format), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			report := &format.Report{
				Name:        name,
				Tokens:      tokens,
				Diagnostics: diags.All(),
			}
			if err := enc.Encode(report); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if diags.HasErrors() {
				return fmt.Errorf("%s: %w", name, compile.ErrHasDiagnostics)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (text, json)")

	return cmd
}

// pick returns flag when it was given and fallback otherwise.
func pick(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}
