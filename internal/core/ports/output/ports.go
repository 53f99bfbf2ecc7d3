package ports

import (
	"context"

	"deploy-bootstrap-service/internal/core/domain"
)

// CommandRunner executes one external command to completion. The
// returned CommandResult always carries the exit code, including when
// err is non-nil. Implementations must respect ctx cancellation.
type CommandRunner interface {
	Run(ctx context.Context, cmd domain.Command) (domain.CommandResult, error)
}

// MigrationStore reads the web framework's own migration bookkeeping.
// It is strictly read-only; all schema writes belong to the framework's
// migration subsystem.
type MigrationStore interface {
	Ping(ctx context.Context) error
	AppliedCount(ctx context.Context) (int, error)
}
