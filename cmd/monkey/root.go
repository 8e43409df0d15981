package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"fortio.org/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/daios-ai/monkey/internal/config"
	"github.com/daios-ai/monkey/monkey"
)

var (
	cfgFile  string
	logLevel string
	noColor  bool

	settings  = config.Default()
	sessionID string
)

// errReported is returned by commands that have already printed their own
// diagnostics; Execute only sets the exit status for it.
var errReported = errors.New("error already reported")

var rootCmd = &cobra.Command{
	Use:   "monkey",
	Short: "Monkey language interpreter",
	Long: `monkey evaluates programs written in the Monkey language.

Without a subcommand it starts the interactive REPL.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runRepl,
}

// Execute runs the command tree and prints any unreported error.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(os.Stderr, "monkey:", err)
	}
	return err
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file, .toml or .yaml (default: $"+config.EnvVar+" or ~/.config/monkey/config.*)")
	pf.StringVar(&logLevel, "log-level", "", "log level: "+strings.Join(config.Levels, ", "))
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")
}

// setup resolves the configuration, applies flag overrides and configures
// logging before any subcommand runs.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, used, err := config.Resolve(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
	}
	if noColor {
		cfg.REPL.Color = false
	}
	if err := log.SetLogLevelStr(strings.ToLower(cfg.Log.Level)); err != nil {
		return fmt.Errorf("log level %q: %w", cfg.Log.Level, err)
	}
	settings = cfg
	sessionID = uuid.NewString()
	if used == "" {
		used = "(defaults)"
	}
	log.Infof("monkey %s: %s session %s, config %s", monkey.Version, cmd.Name(), sessionID, used)
	return nil
}

func newInterpreter(out io.Writer) *monkey.Interpreter {
	return monkey.NewInterpreter(
		monkey.WithOutput(out),
		monkey.WithMaxCallDepth(settings.Eval.MaxCallDepth),
	)
}
