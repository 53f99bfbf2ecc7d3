package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"deploy-bootstrap-service/internal/core/domain"
	"deploy-bootstrap-service/internal/core/services"
	"deploy-bootstrap-service/internal/testutil"
)

func setupRouter(t *testing.T, runner *testutil.MockCommandRunner) (*services.BootstrapService, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	manifest := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(manifest, []byte("django==5.0\n"), 0o644))

	steps := []domain.StepSpec{
		{Name: domain.StepInstall, Command: domain.Command{Bin: "pip"}},
		{Name: domain.StepMigrate, Command: domain.Command{Bin: "python"}},
		{Name: domain.StepCollectStatic, Command: domain.Command{Bin: "python"}},
	}
	bootstrapSvc := services.NewBootstrapService(runner, steps)
	preflightSvc := services.NewPreflightService(manifest, dir, nil)

	h := New(bootstrapSvc, preflightSvc)
	r := gin.New()
	api := r.Group("/api/v1/bootstrap")
	h.RegisterRoutes(api)

	return bootstrapSvc, r
}

func TestGetStatus_NoRunRecorded(t *testing.T) {
	_, r := setupRouter(t, new(testutil.MockCommandRunner))

	req, _ := http.NewRequest("GET", "/api/v1/bootstrap/status", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTriggerRun_ThenStatus(t *testing.T) {
	runner := new(testutil.MockCommandRunner)
	runner.On("Run", mock.Anything, mock.AnythingOfType("domain.Command")).
		Return(domain.CommandResult{ExitCode: 0}, nil)

	svc, r := setupRouter(t, runner)

	req, _ := http.NewRequest("POST", "/api/v1/bootstrap/run", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusAccepted, w.Code)

	require.Eventually(t, func() bool {
		_, err := svc.LastResult()
		return err == nil
	}, time.Second, 5*time.Millisecond)

	req, _ = http.NewRequest("GET", "/api/v1/bootstrap/status", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var result domain.RunResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, domain.StatusOK, result.Status)
	assert.Len(t, result.Steps, 3)
}

func TestTriggerRun_ConflictWhileInProgress(t *testing.T) {
	runner := new(testutil.MockCommandRunner)
	release := make(chan struct{})
	runner.On("Run", mock.Anything, mock.AnythingOfType("domain.Command")).
		Run(func(args mock.Arguments) { <-release }).
		Return(domain.CommandResult{ExitCode: 0}, nil)

	svc, r := setupRouter(t, runner)
	defer close(release)

	req, _ := http.NewRequest("POST", "/api/v1/bootstrap/run", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusAccepted, w.Code)

	require.Eventually(t, svc.InProgress, time.Second, 5*time.Millisecond)

	req, _ = http.NewRequest("POST", "/api/v1/bootstrap/run", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetStatus_InProgress(t *testing.T) {
	runner := new(testutil.MockCommandRunner)
	release := make(chan struct{})
	runner.On("Run", mock.Anything, mock.AnythingOfType("domain.Command")).
		Run(func(args mock.Arguments) { <-release }).
		Return(domain.CommandResult{ExitCode: 0}, nil)

	svc, r := setupRouter(t, runner)
	defer close(release)

	req, _ := http.NewRequest("POST", "/api/v1/bootstrap/run", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusAccepted, w.Code)

	require.Eventually(t, svc.InProgress, time.Second, 5*time.Millisecond)

	req, _ = http.NewRequest("GET", "/api/v1/bootstrap/status", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.StatusInProgress, resp["status"])
}

func TestRunPreflight_OK(t *testing.T) {
	_, r := setupRouter(t, new(testutil.MockCommandRunner))

	req, _ := http.NewRequest("GET", "/api/v1/bootstrap/preflight", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var result domain.PreflightResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.OK)
}

func TestRunPreflight_FailureIsServiceUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	// no manifest written
	bootstrapSvc := services.NewBootstrapService(new(testutil.MockCommandRunner), nil)
	preflightSvc := services.NewPreflightService(filepath.Join(dir, "requirements.txt"), dir, nil)

	h := New(bootstrapSvc, preflightSvc)
	r := gin.New()
	h.RegisterRoutes(r.Group("/api/v1/bootstrap"))

	req, _ := http.NewRequest("GET", "/api/v1/bootstrap/preflight", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
