package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/zcfabra/flat-ast-interpreter/config"
)

const version = "0.1.0"

var log = commonlog.GetLogger("arith")

// app carries the settings shared by every subcommand.
type app struct {
	configPath string
	verbosity  int
	logFile    string

	cfg *config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "arith",
		Short:        "Tokenize, parse and format arithmetic expressions",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (TOML or YAML); defaults to $"+config.EnvFile)
	flags.CountVarP(&a.verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	flags.StringVar(&a.logFile, "log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newTokensCmd(a))
	rootCmd.AddCommand(newFmtCmd(a))
	rootCmd.AddCommand(newGrammarCmd())
	rootCmd.AddCommand(newLSPCmd(a))

	return rootCmd
}

// load resolves the config file, applies flag overrides and configures
// logging.
func (a *app) load(cmd *cobra.Command) error {
	path := a.configPath
	if path == "" {
		path = os.Getenv(config.EnvFile)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbosity = a.verbosity
	}
	if flags.Changed("log-file") {
		cfg.LogFile = a.logFile
	}
	a.cfg = cfg

	commonlog.Configure(cfg.Verbosity, cfg.LogPath())
	if path != "" {
		log.Infof("loaded config from %s", path)
	}
	return nil
}
