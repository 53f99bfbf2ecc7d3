package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"deploy-bootstrap-service/internal/core/domain"
)

// MockCommandRunner is a mock of CommandRunner.
type MockCommandRunner struct {
	mock.Mock
}

func (m *MockCommandRunner) Run(ctx context.Context, cmd domain.Command) (domain.CommandResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(domain.CommandResult), args.Error(1)
}

// MockMigrationStore is a mock of MigrationStore.
type MockMigrationStore struct {
	mock.Mock
}

func (m *MockMigrationStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMigrationStore) AppliedCount(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
