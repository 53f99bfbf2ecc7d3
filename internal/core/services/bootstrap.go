package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"deploy-bootstrap-service/internal/core/domain"
	ports "deploy-bootstrap-service/internal/core/ports/output"
)

// BootstrapService runs the deployment pipeline: an ordered list of
// external commands with fail-fast semantics. A step runs only if every
// step before it exited 0; the first failure aborts the run and its
// exit code becomes the run's exit code.
type BootstrapService struct {
	runner ports.CommandRunner
	steps  []domain.StepSpec

	runInProgress atomic.Bool
	lastResult    *domain.RunResult
	resultMu      sync.RWMutex
}

func NewBootstrapService(runner ports.CommandRunner, steps []domain.StepSpec) *BootstrapService {
	return &BootstrapService{runner: runner, steps: steps}
}

// Run executes all steps in order. Only one run may be active at a
// time; a concurrent call returns domain.ErrRunInProgress. The returned
// RunResult is complete even on failure (skipped steps included). When
// a step fails, Run also returns a *domain.StepError carrying the exit
// code to propagate.
func (s *BootstrapService) Run(ctx context.Context) (*domain.RunResult, error) {
	if !s.runInProgress.CompareAndSwap(false, true) {
		return nil, domain.ErrRunInProgress
	}
	defer s.runInProgress.Store(false)

	result := &domain.RunResult{
		RunID:     uuid.New().String(),
		Status:    domain.StatusInProgress,
		StartedAt: time.Now(),
		Steps:     make([]domain.StepResult, 0, len(s.steps)),
	}

	log.WithFields(log.Fields{
		"run_id": result.RunID,
		"steps":  len(s.steps),
	}).Info("bootstrap run started")

	var stepErr *domain.StepError

	for _, spec := range s.steps {
		if stepErr != nil {
			result.Steps = append(result.Steps, domain.StepResult{
				Name:   spec.Name,
				Status: domain.StatusSkipped,
			})
			log.WithFields(log.Fields{
				"run_id": result.RunID,
				"step":   spec.Name,
			}).Warn("step skipped after earlier failure")
			continue
		}

		log.WithFields(log.Fields{
			"run_id": result.RunID,
			"step":   spec.Name,
			"bin":    spec.Command.Bin,
		}).Info("step started")

		res, err := s.runner.Run(ctx, spec.Command)
		if err != nil {
			result.Steps = append(result.Steps, domain.StepResult{
				Name:       spec.Name,
				Status:     domain.StatusError,
				ExitCode:   res.ExitCode,
				DurationMs: res.Duration.Milliseconds(),
				Error:      err.Error(),
			})
			stepErr = &domain.StepError{Step: spec.Name, ExitCode: res.ExitCode, Err: err}
			log.WithFields(log.Fields{
				"run_id":    result.RunID,
				"step":      spec.Name,
				"exit_code": res.ExitCode,
			}).WithError(err).Error("step failed")
			continue
		}

		result.Steps = append(result.Steps, domain.StepResult{
			Name:       spec.Name,
			Status:     domain.StatusOK,
			ExitCode:   res.ExitCode,
			DurationMs: res.Duration.Milliseconds(),
		})
		log.WithFields(log.Fields{
			"run_id":      result.RunID,
			"step":        spec.Name,
			"duration_ms": res.Duration.Milliseconds(),
		}).Info("step completed")
	}

	result.FinishedAt = time.Now()
	if stepErr != nil {
		result.Status = domain.StatusError
		result.ExitCode = stepErr.ExitCode
	} else {
		result.Status = domain.StatusOK
	}

	s.resultMu.Lock()
	s.lastResult = result
	s.resultMu.Unlock()

	log.WithFields(log.Fields{
		"run_id":    result.RunID,
		"status":    result.Status,
		"exit_code": result.ExitCode,
	}).Info("bootstrap run finished")

	if stepErr != nil {
		return result, stepErr
	}
	return result, nil
}

// LastResult returns the most recent completed run, or
// domain.ErrNoRunRecorded if none has finished yet.
func (s *BootstrapService) LastResult() (*domain.RunResult, error) {
	s.resultMu.RLock()
	defer s.resultMu.RUnlock()
	if s.lastResult == nil {
		return nil, domain.ErrNoRunRecorded
	}
	return s.lastResult, nil
}

// InProgress reports whether a run is currently active.
func (s *BootstrapService) InProgress() bool {
	return s.runInProgress.Load()
}
