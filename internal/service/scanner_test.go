package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pulsewatch/pulsewatch/internal/core"
	"github.com/pulsewatch/pulsewatch/internal/domain/model"
	"github.com/pulsewatch/pulsewatch/internal/mocks"
	"github.com/pulsewatch/pulsewatch/internal/notify"
	"github.com/pulsewatch/pulsewatch/internal/service/dispatcher"
)

// overdueJob builds an interval job whose grace window elapsed overdueBy ago.
// Interval 5m with 60s grace: the escalation threshold at the default
// multiplier is 3×(60s+300s) = 18m past the due time.
func overdueJob(status model.JobStatus, overdueBy time.Duration, now time.Time) *model.MonitoredJob {
	due := now.Add(-overdueBy - time.Minute)
	return &model.MonitoredJob{
		ID:                 "job-1",
		AccountID:          "acct-1",
		Name:               "nightly-backup",
		PingToken:          "token-1",
		ScheduleType:       model.ScheduleTypeInterval,
		ScheduleValue:      "5m",
		GracePeriodSeconds: 60,
		Status:             status,
		ExpectedNextPingAt: &due,
	}
}

func newScanner(t *testing.T, opts ScannerServiceOptions) *ScannerService {
	t.Helper()
	svc, err := NewScannerService(opts)
	require.NoError(t, err)
	return svc
}

func TestScannerRequiresDependencies(t *testing.T) {
	ctrl := gomock.NewController(t)

	_, err := NewScannerService(ScannerServiceOptions{
		Executions: mocks.NewMockExecutionRepository(ctrl),
	})
	require.Error(t, err)

	_, err = NewScannerService(ScannerServiceOptions{
		Jobs: mocks.NewMockMonitoredJobRepository(ctrl),
	})
	require.Error(t, err)
}

func TestTickNoOverdueJobs(t *testing.T) {
	ctrl := gomock.NewController(t)
	jobs := mocks.NewMockMonitoredJobRepository(ctrl)
	execs := mocks.NewMockExecutionRepository(ctrl)

	jobs.EXPECT().FindOverdue(gomock.Any(), gomock.Any(), 100).Return(nil, nil)

	svc := newScanner(t, ScannerServiceOptions{Jobs: jobs, Executions: execs})

	n, err := svc.Tick(context.Background(), time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestTickQueryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	jobs := mocks.NewMockMonitoredJobRepository(ctrl)
	execs := mocks.NewMockExecutionRepository(ctrl)

	jobs.EXPECT().FindOverdue(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("db down"))

	svc := newScanner(t, ScannerServiceOptions{Jobs: jobs, Executions: execs})

	_, err := svc.Tick(context.Background(), time.Now().UTC())
	require.Error(t, err)
}

func TestTickMarksJobLate(t *testing.T) {
	ctrl := gomock.NewController(t)
	jobs := mocks.NewMockMonitoredJobRepository(ctrl)
	execs := mocks.NewMockExecutionRepository(ctrl)

	now := time.Now().UTC()
	job := overdueJob(model.JobStatusHealthy, 2*time.Minute, now)

	jobs.EXPECT().FindOverdue(gomock.Any(), now, 100).Return([]*model.MonitoredJob{job}, nil)
	jobs.EXPECT().MarkOverdue(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p core.MarkOverdueParams) (bool, error) {
			assert.Equal(t, model.JobStatusHealthy, p.FromStatus)
			assert.Equal(t, model.JobStatusLate, p.NewStatus)
			assert.Equal(t, *job.ExpectedNextPingAt, p.ExpectedNextPingAt)
			return true, nil
		})
	execs.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e *model.JobExecution) error {
			assert.Equal(t, model.ExecutionStatusLate, e.Status)
			return nil
		})

	svc := newScanner(t, ScannerServiceOptions{Jobs: jobs, Executions: execs})

	n, err := svc.Tick(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestTickEscalatesToErrored(t *testing.T) {
	ctrl := gomock.NewController(t)
	jobs := mocks.NewMockMonitoredJobRepository(ctrl)
	execs := mocks.NewMockExecutionRepository(ctrl)

	now := time.Now().UTC()
	// Well past 3×(grace+period) = 18m.
	job := overdueJob(model.JobStatusLate, time.Hour, now)

	jobs.EXPECT().FindOverdue(gomock.Any(), now, 100).Return([]*model.MonitoredJob{job}, nil)
	jobs.EXPECT().MarkOverdue(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p core.MarkOverdueParams) (bool, error) {
			assert.Equal(t, model.JobStatusLate, p.FromStatus)
			assert.Equal(t, model.JobStatusErrored, p.NewStatus)
			return true, nil
		})
	execs.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e *model.JobExecution) error {
			assert.Equal(t, model.ExecutionStatusErrored, e.Status)
			return nil
		})

	svc := newScanner(t, ScannerServiceOptions{Jobs: jobs, Executions: execs})

	n, err := svc.Tick(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestTickLateJobWithinThresholdUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	jobs := mocks.NewMockMonitoredJobRepository(ctrl)
	execs := mocks.NewMockExecutionRepository(ctrl)

	now := time.Now().UTC()
	job := overdueJob(model.JobStatusLate, 2*time.Minute, now)

	jobs.EXPECT().FindOverdue(gomock.Any(), now, 100).Return([]*model.MonitoredJob{job}, nil)
	// Already late and under the escalation threshold: no write, no re-notify.

	svc := newScanner(t, ScannerServiceOptions{Jobs: jobs, Executions: execs})

	n, err := svc.Tick(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestTickEscalationThresholdFromDueTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	jobs := mocks.NewMockMonitoredJobRepository(ctrl)
	execs := mocks.NewMockExecutionRepository(ctrl)

	now := time.Now().UTC()
	// Interval 5m with 60s grace at the default multiplier: the threshold is
	// 3×(60s+300s) = 1080s measured from the due time, not from the end of the
	// grace window.
	past := overdueJob(model.JobStatusLate, 0, now)
	pastDue := now.Add(-1100 * time.Second)
	past.ExpectedNextPingAt = &pastDue

	under := overdueJob(model.JobStatusLate, 0, now)
	under.ID = "job-2"
	underDue := now.Add(-1000 * time.Second)
	under.ExpectedNextPingAt = &underDue

	jobs.EXPECT().FindOverdue(gomock.Any(), now, 100).
		Return([]*model.MonitoredJob{past, under}, nil)
	// Only the job past the threshold transitions; the other is already late
	// and stays untouched.
	jobs.EXPECT().MarkOverdue(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p core.MarkOverdueParams) (bool, error) {
			assert.Equal(t, past.ID, p.JobID)
			assert.Equal(t, model.JobStatusErrored, p.NewStatus)
			return true, nil
		})
	execs.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

	svc := newScanner(t, ScannerServiceOptions{Jobs: jobs, Executions: execs})

	n, err := svc.Tick(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestTickUnparsableScheduleNeverEscalates(t *testing.T) {
	ctrl := gomock.NewController(t)
	jobs := mocks.NewMockMonitoredJobRepository(ctrl)
	execs := mocks.NewMockExecutionRepository(ctrl)

	now := time.Now().UTC()
	job := overdueJob(model.JobStatusHealthy, 48*time.Hour, now)
	job.ScheduleType = model.ScheduleTypeCron
	job.ScheduleValue = "not a cron"

	jobs.EXPECT().FindOverdue(gomock.Any(), now, 100).Return([]*model.MonitoredJob{job}, nil)
	jobs.EXPECT().MarkOverdue(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p core.MarkOverdueParams) (bool, error) {
			// Without a nominal period the job can only go late, however overdue.
			assert.Equal(t, model.JobStatusLate, p.NewStatus)
			return true, nil
		})
	execs.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

	svc := newScanner(t, ScannerServiceOptions{Jobs: jobs, Executions: execs})

	n, err := svc.Tick(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestTickConcurrentPingWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	jobs := mocks.NewMockMonitoredJobRepository(ctrl)
	execs := mocks.NewMockExecutionRepository(ctrl)

	now := time.Now().UTC()
	job := overdueJob(model.JobStatusHealthy, 2*time.Minute, now)

	jobs.EXPECT().FindOverdue(gomock.Any(), now, 100).Return([]*model.MonitoredJob{job}, nil)
	// The optimistic guard rejects the write: a ping landed after our read.
	jobs.EXPECT().MarkOverdue(gomock.Any(), gomock.Any()).Return(false, nil)
	// No execution append, no notification.

	svc := newScanner(t, ScannerServiceOptions{Jobs: jobs, Executions: execs})

	n, err := svc.Tick(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestTickPerJobErrorSkipsJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	jobs := mocks.NewMockMonitoredJobRepository(ctrl)
	execs := mocks.NewMockExecutionRepository(ctrl)

	now := time.Now().UTC()
	broken := overdueJob(model.JobStatusHealthy, 2*time.Minute, now)
	healthy := overdueJob(model.JobStatusHealthy, 2*time.Minute, now)
	healthy.ID = "job-2"

	jobs.EXPECT().FindOverdue(gomock.Any(), now, 100).
		Return([]*model.MonitoredJob{broken, healthy}, nil)
	jobs.EXPECT().MarkOverdue(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p core.MarkOverdueParams) (bool, error) {
			if p.JobID == broken.ID {
				return false, errors.New("write failed")
			}
			return true, nil
		}).Times(2)
	execs.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

	svc := newScanner(t, ScannerServiceOptions{Jobs: jobs, Executions: execs})

	n, err := svc.Tick(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestTickNotifiesTransitions(t *testing.T) {
	ctrl := gomock.NewController(t)
	jobs := mocks.NewMockMonitoredJobRepository(ctrl)
	execs := mocks.NewMockExecutionRepository(ctrl)
	settings := mocks.NewMockSettingRepository(ctrl)

	now := time.Now().UTC()
	job := overdueJob(model.JobStatusHealthy, 2*time.Minute, now)

	settings.EXPECT().VerifiedBindings(gomock.Any(), job.ID).Return([]*model.ChannelBinding{{
		Setting: model.JobNotificationSetting{
			JobID:            job.ID,
			ChannelID:        "chan-1",
			NotifyOnLateness: true,
		},
		Channel: model.NotificationChannel{
			ID: "chan-1", Type: model.ChannelTypeSlack, IsVerified: true,
		},
	}}, nil)

	var delivered []notify.EventPayload
	disp, err := dispatcher.New(dispatcher.Options{
		Settings: settings,
		Senders: map[model.ChannelType]notify.Sender{
			model.ChannelTypeSlack: notify.SenderFunc(
				func(_ context.Context, _ model.ChannelConfig, p notify.EventPayload) error {
					delivered = append(delivered, p)
					return nil
				}),
		},
	})
	require.NoError(t, err)

	jobs.EXPECT().FindOverdue(gomock.Any(), now, 100).Return([]*model.MonitoredJob{job}, nil)
	jobs.EXPECT().MarkOverdue(gomock.Any(), gomock.Any()).Return(true, nil)
	execs.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

	svc := newScanner(t, ScannerServiceOptions{Jobs: jobs, Executions: execs, Dispatcher: disp})

	n, err := svc.Tick(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Dispatch is synchronous inside the tick, so the delivery is visible here.
	require.Len(t, delivered, 1)
	assert.Equal(t, notify.EventKindLateness, delivered[0].EventKind)
	assert.Equal(t, model.JobStatusLate, delivered[0].CurrentStatus)
}

func TestTickCustomEscalationMultiplier(t *testing.T) {
	ctrl := gomock.NewController(t)
	jobs := mocks.NewMockMonitoredJobRepository(ctrl)
	execs := mocks.NewMockExecutionRepository(ctrl)

	now := time.Now().UTC()
	// 10m past grace: beyond 1×(60s+300s)=6m but well short of the default 18m.
	job := overdueJob(model.JobStatusLate, 10*time.Minute, now)

	jobs.EXPECT().FindOverdue(gomock.Any(), now, 50).Return([]*model.MonitoredJob{job}, nil)
	jobs.EXPECT().MarkOverdue(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p core.MarkOverdueParams) (bool, error) {
			assert.Equal(t, model.JobStatusErrored, p.NewStatus)
			return true, nil
		})
	execs.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

	svc := newScanner(t, ScannerServiceOptions{
		Jobs:       jobs,
		Executions: execs,
		Config:     core.ScannerConfig{BatchSize: 50, EscalationMultiplier: 1},
	})

	n, err := svc.Tick(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
