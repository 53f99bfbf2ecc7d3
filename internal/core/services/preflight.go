package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"deploy-bootstrap-service/internal/core/domain"
	ports "deploy-bootstrap-service/internal/core/ports/output"
)

// PreflightService verifies the environment preconditions the pipeline
// relies on: the dependency manifest, a writable static root, and
// (optionally) a reachable database. All probes are read-only apart
// from a temp-file write used to test static root writability.
type PreflightService struct {
	manifestPath string
	staticRoot   string
	store        ports.MigrationStore // nil when database checks are disabled
}

func NewPreflightService(manifestPath, staticRoot string, store ports.MigrationStore) *PreflightService {
	return &PreflightService{
		manifestPath: manifestPath,
		staticRoot:   staticRoot,
		store:        store,
	}
}

// Run executes all configured probes and aggregates them. A failed
// probe never aborts the others.
func (s *PreflightService) Run(ctx context.Context) *domain.PreflightResult {
	result := &domain.PreflightResult{OK: true}

	result.Checks = append(result.Checks, s.checkManifest())
	result.Checks = append(result.Checks, s.checkStaticRoot())
	if s.store != nil {
		result.Checks = append(result.Checks, s.checkDatabase(ctx))
		result.Checks = append(result.Checks, s.checkMigrationTable(ctx))
	}

	for _, check := range result.Checks {
		if !check.OK {
			result.OK = false
		}
		logCheck(check)
	}
	return result
}

func (s *PreflightService) checkManifest() domain.CheckResult {
	start := time.Now()
	info, err := os.Stat(s.manifestPath)
	if err != nil {
		return failedCheck("manifest", start, domain.ErrManifestNotFound)
	}
	if !info.Mode().IsRegular() {
		return failedCheck("manifest", start, domain.ErrManifestNotRegularFile)
	}
	return domain.CheckResult{
		Name:      "manifest",
		OK:        true,
		LatencyMs: time.Since(start).Milliseconds(),
		Detail:    s.manifestPath,
	}
}

// checkStaticRoot probes writability with a throwaway file. The static
// root itself is an external precondition; when it does not exist yet
// the probe falls back to its parent directory, which is where the
// collection step will create it.
func (s *PreflightService) checkStaticRoot() domain.CheckResult {
	start := time.Now()

	dir := s.staticRoot
	if _, err := os.Stat(dir); err != nil {
		dir = filepath.Dir(s.staticRoot)
	}

	probe, err := os.CreateTemp(dir, ".deployctl-preflight-*")
	if err != nil {
		return failedCheck("static_root", start,
			fmt.Errorf("%w: %v", domain.ErrStaticRootNotWritable, err))
	}
	probe.Close()
	os.Remove(probe.Name())

	return domain.CheckResult{
		Name:      "static_root",
		OK:        true,
		LatencyMs: time.Since(start).Milliseconds(),
		Detail:    s.staticRoot,
	}
}

func (s *PreflightService) checkDatabase(ctx context.Context) domain.CheckResult {
	start := time.Now()
	if err := s.store.Ping(ctx); err != nil {
		return failedCheck("database", start,
			fmt.Errorf("%w: %v", domain.ErrDatabaseUnreachable, err))
	}
	return domain.CheckResult{
		Name:      "database",
		OK:        true,
		LatencyMs: time.Since(start).Milliseconds(),
	}
}

func (s *PreflightService) checkMigrationTable(ctx context.Context) domain.CheckResult {
	start := time.Now()
	applied, err := s.store.AppliedCount(ctx)
	if err != nil {
		return failedCheck("migrations", start,
			fmt.Errorf("%w: %v", domain.ErrMigrationTableUnreadable, err))
	}
	return domain.CheckResult{
		Name:      "migrations",
		OK:        true,
		LatencyMs: time.Since(start).Milliseconds(),
		Detail:    fmt.Sprintf("%d applied", applied),
	}
}

func failedCheck(name string, start time.Time, err error) domain.CheckResult {
	return domain.CheckResult{
		Name:      name,
		OK:        false,
		LatencyMs: time.Since(start).Milliseconds(),
		Error:     err.Error(),
	}
}

func logCheck(c domain.CheckResult) {
	if c.OK {
		log.WithFields(log.Fields{"check": c.Name, "latency_ms": c.LatencyMs}).Info("preflight check ok")
		return
	}
	log.WithFields(log.Fields{"check": c.Name, "error": c.Error}).Warn("preflight check failed")
}
