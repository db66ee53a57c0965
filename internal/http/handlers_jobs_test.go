package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pulsewatch/pulsewatch/internal/data"
	"github.com/pulsewatch/pulsewatch/internal/domain/model"
)

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr *strings.Reader
	if body == "" {
		rdr = strings.NewReader("")
	} else {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Authorization", "Bearer valid")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestJobsRequireAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJobsRejectBadToken(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	req.Header.Set("Authorization", "Bearer forged")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateJob(t *testing.T) {
	router, repos := newTestRouter(t)

	repos.jobs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, job *model.MonitoredJob) error {
			assert.Equal(t, testAccountID, job.AccountID)
			assert.NotEmpty(t, job.PingToken)
			return nil
		})

	rec := doJSON(t, router, http.MethodPost, "/api/jobs",
		`{"name":"nightly-backup","schedule_type":"interval","schedule_value":"30m","grace_period_seconds":120}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		ID      string `json:"id"`
		PingURL string `json:"ping_url"`
		Status  string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "active", resp.Status)
	assert.True(t, strings.HasPrefix(resp.PingURL, "http://pulsewatch.test/ping/"), resp.PingURL)
}

func TestCreateJobInvalidSchedule(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/jobs",
		`{"name":"x","schedule_type":"interval","schedule_value":"bogus"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetJobNotFound(t *testing.T) {
	router, repos := newTestRouter(t)

	repos.jobs.EXPECT().GetByID(gomock.Any(), testAccountID, "ghost").
		Return(nil, data.ErrJobNotFound)

	rec := doJSON(t, router, http.MethodGet, "/api/jobs/ghost", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestPauseJob(t *testing.T) {
	router, repos := newTestRouter(t)

	repos.jobs.EXPECT().SetStatus(gomock.Any(), testAccountID, "job-1", model.JobStatusPaused).
		Return(true, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/jobs/job-1/pause", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestListExecutions(t *testing.T) {
	router, repos := newTestRouter(t)

	repos.executions.EXPECT().ListByJob(gomock.Any(), testAccountID, "job-1", 5).
		Return([]*model.JobExecution{{ID: "exec-1", JobID: "job-1"}}, nil)

	rec := doJSON(t, router, http.MethodGet, "/api/jobs/job-1/executions?limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "exec-1")
}

func TestDeleteJobNotFound(t *testing.T) {
	router, repos := newTestRouter(t)

	repos.jobs.EXPECT().Delete(gomock.Any(), testAccountID, "ghost").Return(false, nil)

	rec := doJSON(t, router, http.MethodDelete, "/api/jobs/ghost", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
