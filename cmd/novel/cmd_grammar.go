package main

import (
	"fmt"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/SatelliteDish/Novel/syntax"
)

func newGrammarCmd() *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print the EBNF grammar of Novel expressions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verify {
				if err := syntax.VerifyGrammar(); err != nil {
					printErrors(cmd, err)
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "grammar ok (start: %s)\n", syntax.StartProduction)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), syntax.GrammarSource())
			return nil
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "parse and verify the grammar instead of printing it")

	return cmd
}

// printErrors prints every error of an ebnf error list on its own line.
func printErrors(cmd *cobra.Command, err error) {
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(cmd.ErrOrStderr(), v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
	}
}
