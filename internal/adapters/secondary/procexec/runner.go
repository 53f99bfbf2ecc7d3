// Package procexec runs external commands for the bootstrap pipeline.
// Child stdout/stderr pass straight through to this process's streams
// so the invoked tool's own diagnostics reach the operator unmodified.
package procexec

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"deploy-bootstrap-service/internal/core/domain"
	ports "deploy-bootstrap-service/internal/core/ports/output"
)

type runner struct {
	stepTimeout time.Duration
}

// NewRunner creates a CommandRunner that applies stepTimeout to every
// command. A zero timeout means no per-step limit.
func NewRunner(stepTimeout time.Duration) ports.CommandRunner {
	return &runner{stepTimeout: stepTimeout}
}

func (r *runner) Run(ctx context.Context, spec domain.Command) (domain.CommandResult, error) {
	if r.stepTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.stepTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, spec.Bin, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if len(spec.Env) > 0 {
		cmd.Env = append(os.Environ(), spec.Env...)
	}

	start := time.Now()
	err := cmd.Run()
	result := domain.CommandResult{Duration: time.Since(start)}

	if err == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		if result.ExitCode < 0 {
			// Killed by a signal (timeout or cancellation); there is no
			// exit code from the tool itself to propagate.
			result.ExitCode = 1
		}
		if ctx.Err() != nil {
			return result, fmt.Errorf("%s: %w", spec.Bin, ctx.Err())
		}
		return result, fmt.Errorf("%s: %w", spec.Bin, err)
	default:
		// The command never started (binary missing, permission denied).
		result.ExitCode = domain.ExitCommandNotFound
		return result, fmt.Errorf("start %s: %w", spec.Bin, err)
	}
}
