package main

import (
	"errors"
	"fmt"

	"deploy-bootstrap-service/internal/config"
	"deploy-bootstrap-service/internal/core/domain"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel string

	// cfg and app are populated by PersistentPreRunE and shared with
	// all subcommands.
	cfg *config.Config
	app *AppContext
)

var rootCmd = &cobra.Command{
	Use:   "deployctl",
	Short: "Deployment bootstrap runner",
	Long: `deployctl prepares a web application deployment in three steps:
install declared dependencies, apply pending database migrations, and
collect static assets into the serving directory.

Steps run strictly in order and the first failure aborts the run; the
failing tool's exit code becomes deployctl's exit code. Invoked without
a subcommand, deployctl runs the pipeline once and exits.`,
	SilenceUsage: true,
	RunE:         runBootstrap,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides LOGGER_LEVEL")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		// --log-level flag takes precedence over the configured value.
		if cmd.Flags().Changed("log-level") {
			cfg.Logger.Level = logLevel
		}
		initLogger(cfg)

		app, err = buildAppContext(cfg)
		if err != nil {
			return fmt.Errorf("building app context: %w", err)
		}
		return nil
	}

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(preflightCmd)
	rootCmd.AddCommand(serveCmd)
}

// Execute runs the command tree and maps the result to a process exit
// code. A failed step surfaces its own exit code; anything else that
// goes wrong exits 1.
func Execute() int {
	err := rootCmd.Execute()
	if app != nil {
		app.Close()
	}
	if err == nil {
		return 0
	}

	var stepErr *domain.StepError
	if errors.As(err, &stepErr) {
		return stepErr.ExitCode
	}
	return 1
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
