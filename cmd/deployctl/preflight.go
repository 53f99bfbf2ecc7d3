package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/spf13/cobra"
)

var errPreflightFailed = errors.New("preflight checks failed")

var preflightCmd = &cobra.Command{
	Use:   "preflight",
	Short: "Check deployment preconditions without running the pipeline",
	Long: `Preflight verifies that the dependency manifest exists, the static
root is writable and, when database checks are enabled, that the
database is reachable and its migration bookkeeping table is readable.
Nothing is installed, migrated, or collected.`,
	RunE: runPreflight,
}

func runPreflight(cmd *cobra.Command, args []string) error {
	result := app.preflightSvc.Run(context.Background())

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(result)

	if !result.OK {
		return errPreflightFailed
	}
	return nil
}
