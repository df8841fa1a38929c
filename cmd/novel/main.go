package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/SatelliteDish/Novel/config"
)

const version = "0.1.0"

var log = commonlog.GetLogger("novel.cmd")

// globals holds the persistent flags and the configuration they resolve to.
type globals struct {
	configPath string
	verbose    int
	logFile    string
	recovery   string

	cfg *config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:          "novel",
		Short:        "Lex, parse and evaluate Novel expressions",
		Version:      version,
		SilenceUsage: true,
	}
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return g.load(cmd)
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&g.configPath, "config", "", "configuration file (default: novel.toml or novel.yaml found from the working directory)")
	flags.CountVarP(&g.verbose, "verbose", "v", "increase log verbosity")
	flags.StringVar(&g.logFile, "log-file", "", "write logs to this file instead of stderr")
	flags.StringVar(&g.recovery, "recovery", "", "parser recovery policy (skip, stop)")

	rootCmd.AddCommand(newLexCmd(g))
	rootCmd.AddCommand(newParseCmd(g))
	rootCmd.AddCommand(newEvalCmd(g))
	rootCmd.AddCommand(newCheckCmd(g))
	rootCmd.AddCommand(newGrammarCmd())
	rootCmd.AddCommand(newLSPCmd(g))
	rootCmd.AddCommand(newServeCmd(g))

	return rootCmd
}

// load reads the configuration, applies flag overrides and sets up logging.
func (g *globals) load(cmd *cobra.Command) error {
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	cfg, err := config.LoadOrDefault(g.configPath, dir)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("recovery") {
		cfg.Parser.Recovery = g.recovery
	}
	if flags.Changed("verbose") {
		cfg.Log.Verbosity = g.verbose
	}
	if flags.Changed("log-file") {
		cfg.Log.File = g.logFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Log.File != "" {
		commonlog.Configure(cfg.Log.Verbosity, &cfg.Log.File)
	} else {
		commonlog.Configure(cfg.Log.Verbosity, nil)
	}

	g.cfg = cfg
	log.Debugf("recovery=%s start_line=%d format=%s", cfg.Parser.Recovery, cfg.Parser.StartLine, cfg.Output.Format)
	return nil
}
