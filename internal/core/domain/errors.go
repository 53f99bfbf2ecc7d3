package domain

import (
	"errors"
	"fmt"
)

// Run lifecycle errors
var (
	ErrRunInProgress = errors.New("bootstrap run already in progress")
	ErrNoRunRecorded = errors.New("no bootstrap run recorded")
)

// Preflight errors
var (
	ErrManifestNotFound         = errors.New("dependency manifest not found")
	ErrManifestNotRegularFile   = errors.New("dependency manifest is not a regular file")
	ErrStaticRootNotWritable    = errors.New("static root is not writable")
	ErrDatabaseUnreachable      = errors.New("database is unreachable")
	ErrMigrationTableUnreadable = errors.New("migration bookkeeping table is unreadable")
)

// StepError reports a failed bootstrap step. It carries the exit code
// that the whole process must propagate.
type StepError struct {
	Step     string
	ExitCode int
	Err      error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s failed (exit %d): %v", e.Step, e.ExitCode, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
