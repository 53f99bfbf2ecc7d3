package main

import (
	"context"
	"path/filepath"

	"deploy-bootstrap-service/internal/adapters/secondary/postgres"
	"deploy-bootstrap-service/internal/adapters/secondary/procexec"
	"deploy-bootstrap-service/internal/config"
	"deploy-bootstrap-service/internal/core/domain"
	ports "deploy-bootstrap-service/internal/core/ports/output"
	"deploy-bootstrap-service/internal/core/services"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// AppContext holds all wired dependencies.
type AppContext struct {
	pool *pgxpool.Pool

	store        ports.MigrationStore
	bootstrapSvc *services.BootstrapService
	preflightSvc *services.PreflightService
}

func buildAppContext(cfg *config.Config) (*AppContext, error) {
	app := &AppContext{}

	// Database access is optional: only the preflight probes and the
	// health endpoint use it, never the pipeline itself.
	if cfg.Database.Enabled {
		poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN())
		if err != nil {
			return nil, err
		}
		poolCfg.MaxConns = int32(cfg.Database.MaxOpenConns)
		poolCfg.MinConns = int32(cfg.Database.MaxIdleConns)
		poolCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime

		pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
		if err != nil {
			return nil, err
		}
		app.pool = pool
		app.store = postgres.NewMigrationStore(pool, cfg.Database.MigrationsTable)
		log.Info("database checks enabled")
	} else {
		log.Info("database checks disabled")
	}

	runner := procexec.NewRunner(cfg.Bootstrap.StepTimeout)
	app.bootstrapSvc = services.NewBootstrapService(runner, pipelineSteps(&cfg.Bootstrap))
	app.preflightSvc = services.NewPreflightService(
		resolvePath(cfg.Bootstrap.Workdir, cfg.Bootstrap.RequirementsFile),
		resolvePath(cfg.Bootstrap.Workdir, cfg.Bootstrap.StaticRoot),
		app.store,
	)

	return app, nil
}

func (a *AppContext) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

// pipelineSteps builds the fixed three-step pipeline. All commands run
// in the configured working directory; the collection step passes
// --noinput so no overwrite confirmation can block the run.
func pipelineSteps(b *config.BootstrapConfig) []domain.StepSpec {
	return []domain.StepSpec{
		{
			Name: domain.StepInstall,
			Command: domain.Command{
				Bin:  b.InstallerBin,
				Args: []string{"install", "-r", b.RequirementsFile},
				Dir:  b.Workdir,
			},
		},
		{
			Name: domain.StepMigrate,
			Command: domain.Command{
				Bin:  b.ManageBin,
				Args: []string{b.ManageScript, "migrate", "--noinput"},
				Dir:  b.Workdir,
			},
		},
		{
			Name: domain.StepCollectStatic,
			Command: domain.Command{
				Bin:  b.ManageBin,
				Args: []string{b.ManageScript, "collectstatic", "--noinput"},
				Dir:  b.Workdir,
			},
		},
	}
}

// resolvePath anchors a relative path at the pipeline working
// directory, matching how the external tools will resolve it.
func resolvePath(workdir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workdir, path)
}
