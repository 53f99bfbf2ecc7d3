package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	ports "deploy-bootstrap-service/internal/core/ports/output"
)

type migrationStore struct {
	pool  *pgxpool.Pool
	table string
}

// NewMigrationStore creates a read-only view over the web framework's
// migration bookkeeping table (django_migrations by default). The
// migration subsystem owns that table; this store never writes to it.
func NewMigrationStore(pool *pgxpool.Pool, table string) ports.MigrationStore {
	return &migrationStore{pool: pool, table: table}
}

func (s *migrationStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *migrationStore) AppliedCount(ctx context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT count(*) FROM %s`, pgx.Identifier{s.table}.Sanitize())

	var count int
	if err := s.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count applied migrations: %w", err)
	}
	return count, nil
}
