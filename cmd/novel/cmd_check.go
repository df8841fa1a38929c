package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/SatelliteDish/Novel/compile"
	"github.com/SatelliteDish/Novel/format"
)

func newCheckCmd(g *globals) *cobra.Command {
	var outputFormat string
	var workers int
	var watch bool

	cmd := &cobra.Command{
		Use:   "check <path>...",
		Short: "Compile many Novel sources and report their diagnostics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("workers") {
				g.cfg.Check.Workers = workers
			}
			enc, err := format.NewEncoder(pick(outputFormat, g.cfg.Output.Format), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if watch {
				if len(args) != 1 {
					return fmt.Errorf("--watch takes exactly one directory")
				}
				return runWatch(cmd.Context(), g, args[0], enc)
			}
			return runCheck(cmd.Context(), g, args, enc)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (text, json)")
	cmd.Flags().IntVarP(&workers, "workers", "j", 0, "number of parallel compilations (default: one per CPU)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep running and recheck files as they change")

	return cmd
}

func runCheck(ctx context.Context, g *globals, args []string, enc format.Encoder) error {
	paths, err := expandPaths(args)
	if err != nil {
		return err
	}

	sources := make([]compile.Source, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read source: %w", err)
		}
		sources = append(sources, compile.Source{Name: path, Text: string(data)})
	}

	units, err := compile.CompileAll(ctx, sources, g.cfg.Check.Workers, g.cfg.ParserOptions()...)
	if err != nil {
		return err
	}

	failed := 0
	for _, u := range units {
		if !u.OK() {
			failed++
		}
		if err := enc.Encode(format.UnitReport(u)); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	}
	log.Infof("checked %d files, %d with diagnostics", len(units), failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d files have diagnostics", failed, len(units))
	}
	return nil
}

// expandPaths replaces every directory among args with the Novel sources
// below it.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		found, err := compile.FindSources(arg)
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
		paths = append(paths, found...)
	}
	return paths, nil
}

func runWatch(ctx context.Context, g *globals, dir string, enc format.Encoder) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	ws := compile.NewWorkspace(dir, g.cfg.Check.Workers, g.cfg.ParserOptions()...)
	w := compile.NewWatcher(ws, g.cfg.Check.WatchInterval.Duration)
	w.OnChange = func(u *compile.Unit) {
		if err := enc.Encode(format.UnitReport(u)); err != nil {
			log.Errorf("encode %s: %s", u.Name, err)
		}
	}

	log.Infof("watching %s every %s", dir, g.cfg.Check.WatchInterval.Duration)
	w.Start()
	<-ctx.Done()
	w.Stop()
	return nil
}
