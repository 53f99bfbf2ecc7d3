package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunResult_FailedStep(t *testing.T) {
	r := &RunResult{
		Steps: []StepResult{
			{Name: StepInstall, Status: StatusOK},
			{Name: StepMigrate, Status: StatusError, ExitCode: 3},
			{Name: StepCollectStatic, Status: StatusSkipped},
		},
	}

	failed := r.FailedStep()
	require.NotNil(t, failed)
	assert.Equal(t, StepMigrate, failed.Name)
	assert.Equal(t, 3, failed.ExitCode)
}

func TestRunResult_FailedStep_NoneFailed(t *testing.T) {
	r := &RunResult{
		Steps: []StepResult{
			{Name: StepInstall, Status: StatusOK},
			{Name: StepMigrate, Status: StatusOK},
		},
	}
	assert.Nil(t, r.FailedStep())
}

func TestStepError(t *testing.T) {
	cause := errors.New("exit status 3")
	err := &StepError{Step: StepMigrate, ExitCode: 3, Err: cause}

	assert.Contains(t, err.Error(), "migrate")
	assert.Contains(t, err.Error(), "exit 3")
	assert.ErrorIs(t, err, cause)

	var stepErr *StepError
	require.ErrorAs(t, error(err), &stepErr)
	assert.Equal(t, 3, stepErr.ExitCode)
}
