package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"deploy-bootstrap-service/internal/core/domain"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the bootstrap pipeline once and exit",
	Long: `Run executes the three deployment steps in order: install
dependencies, apply migrations, collect static assets. The run result
is printed to stdout as JSON. Exit status is 0 on success, otherwise
the exit code of the first failing step.`,
	RunE: runBootstrap,
}

func runBootstrap(cmd *cobra.Command, args []string) error {
	result, err := app.bootstrapSvc.Run(context.Background())
	if result != nil {
		printRunResult(result)
	}
	if err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}
	return nil
}

func printRunResult(result *domain.RunResult) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stdout, `{"status":%q}`+"\n", result.Status)
	}
}
