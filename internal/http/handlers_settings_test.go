package httpx

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pulsewatch/pulsewatch/internal/data"
	"github.com/pulsewatch/pulsewatch/internal/domain/model"
)

func TestUpsertSetting(t *testing.T) {
	router, repos := newTestRouter(t)

	repos.jobs.EXPECT().GetByID(gomock.Any(), testAccountID, "job-1").
		Return(&model.MonitoredJob{ID: "job-1"}, nil)
	repos.channels.EXPECT().GetByID(gomock.Any(), testAccountID, "chan-1").
		Return(&model.NotificationChannel{ID: "chan-1"}, nil)
	repos.settings.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, s *model.JobNotificationSetting) error {
			assert.Equal(t, "job-1", s.JobID)
			assert.True(t, s.NotifyOnFailure)
			assert.True(t, s.NotifyOnRecovery)
			return nil
		})

	rec := doJSON(t, router, http.MethodPut, "/api/jobs/job-1/notifications",
		`{"channel_id":"chan-1","notify_on_failure":true,"notify_on_recovery":true}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"channel_id":"chan-1"`)
}

func TestUpsertSettingUnknownChannel(t *testing.T) {
	router, repos := newTestRouter(t)

	repos.jobs.EXPECT().GetByID(gomock.Any(), testAccountID, "job-1").
		Return(&model.MonitoredJob{ID: "job-1"}, nil)
	repos.channels.EXPECT().GetByID(gomock.Any(), testAccountID, "ghost").
		Return(nil, data.ErrChannelNotFound)

	rec := doJSON(t, router, http.MethodPut, "/api/jobs/job-1/notifications",
		`{"channel_id":"ghost","notify_on_failure":true}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListSettings(t *testing.T) {
	router, repos := newTestRouter(t)

	repos.settings.EXPECT().ListByJob(gomock.Any(), testAccountID, "job-1").
		Return([]*model.JobNotificationSetting{{ID: "set-1", JobID: "job-1"}}, nil)

	rec := doJSON(t, router, http.MethodGet, "/api/jobs/job-1/notifications", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "set-1")
}

func TestDeleteSettingNotFound(t *testing.T) {
	router, repos := newTestRouter(t)

	repos.settings.EXPECT().Delete(gomock.Any(), testAccountID, "ghost").Return(false, nil)

	rec := doJSON(t, router, http.MethodDelete, "/api/notifications/ghost", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
