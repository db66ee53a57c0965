package dispatcher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsewatch/pulsewatch/internal/domain/model"
	"github.com/pulsewatch/pulsewatch/internal/notify"
)

type stubSettingRepo struct {
	bindings []*model.ChannelBinding
	err      error
}

func (s *stubSettingRepo) Upsert(context.Context, *model.JobNotificationSetting) error {
	return errors.New("not implemented")
}

func (s *stubSettingRepo) ListByJob(context.Context, string, string) ([]*model.JobNotificationSetting, error) {
	return nil, errors.New("not implemented")
}

func (s *stubSettingRepo) VerifiedBindings(context.Context, string) ([]*model.ChannelBinding, error) {
	return s.bindings, s.err
}

func (s *stubSettingRepo) Delete(context.Context, string, string) (bool, error) {
	return false, errors.New("not implemented")
}

type recordingSender struct {
	mu    sync.Mutex
	calls []notify.EventPayload
	err   error
}

func (r *recordingSender) Send(_ context.Context, _ model.ChannelConfig, p notify.EventPayload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, p)
	return r.err
}

func (r *recordingSender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func binding(channelType model.ChannelType, failure, lateness, recovery bool) *model.ChannelBinding {
	return &model.ChannelBinding{
		Setting: model.JobNotificationSetting{
			ID:               "setting-1",
			JobID:            "job-1",
			ChannelID:        "chan-1",
			NotifyOnFailure:  failure,
			NotifyOnLateness: lateness,
			NotifyOnRecovery: recovery,
		},
		Channel: model.NotificationChannel{
			ID:         "chan-1",
			AccountID:  "acct-1",
			Type:       channelType,
			Name:       "ops",
			IsVerified: true,
		},
	}
}

func TestNewValidation(t *testing.T) {
	senders := map[model.ChannelType]notify.Sender{
		model.ChannelTypeSlack: &recordingSender{},
	}

	_, err := New(Options{Senders: senders})
	require.Error(t, err)

	_, err = New(Options{Settings: &stubSettingRepo{}})
	require.Error(t, err)

	d, err := New(Options{Settings: &stubSettingRepo{}, Senders: senders})
	require.NoError(t, err)
	assert.Equal(t, defaultSendTimeout, d.sendTimeout)
}

func TestDispatchMatchingFlag(t *testing.T) {
	sender := &recordingSender{}
	repo := &stubSettingRepo{bindings: []*model.ChannelBinding{
		binding(model.ChannelTypeSlack, true, false, false),
	}}

	d, err := New(Options{
		Settings: repo,
		Senders:  map[model.ChannelType]notify.Sender{model.ChannelTypeSlack: sender},
	})
	require.NoError(t, err)

	d.Dispatch(context.Background(), notify.EventPayload{
		JobID:     "job-1",
		JobName:   "nightly-backup",
		EventKind: notify.EventKindFailure,
	})

	require.Equal(t, 1, sender.count())
	assert.Equal(t, "nightly-backup", sender.calls[0].JobName)
}

func TestDispatchSkipsUnmatchedKind(t *testing.T) {
	sender := &recordingSender{}
	repo := &stubSettingRepo{bindings: []*model.ChannelBinding{
		binding(model.ChannelTypeSlack, true, false, false),
	}}

	d, err := New(Options{
		Settings: repo,
		Senders:  map[model.ChannelType]notify.Sender{model.ChannelTypeSlack: sender},
	})
	require.NoError(t, err)

	// Binding opted into failure only; lateness and recovery stay silent.
	d.Dispatch(context.Background(), notify.EventPayload{JobID: "job-1", EventKind: notify.EventKindLateness})
	d.Dispatch(context.Background(), notify.EventPayload{JobID: "job-1", EventKind: notify.EventKindRecovery})

	assert.Equal(t, 0, sender.count())
}

func TestDispatchFanOut(t *testing.T) {
	slackSender := &recordingSender{}
	webhookSender := &recordingSender{}

	slackBinding := binding(model.ChannelTypeSlack, false, true, false)
	webhookBinding := binding(model.ChannelTypeWebhook, false, true, false)
	webhookBinding.Channel.ID = "chan-2"
	webhookBinding.Setting.ChannelID = "chan-2"

	repo := &stubSettingRepo{bindings: []*model.ChannelBinding{slackBinding, webhookBinding}}

	d, err := New(Options{
		Settings: repo,
		Senders: map[model.ChannelType]notify.Sender{
			model.ChannelTypeSlack:   slackSender,
			model.ChannelTypeWebhook: webhookSender,
		},
	})
	require.NoError(t, err)

	d.Dispatch(context.Background(), notify.EventPayload{JobID: "job-1", EventKind: notify.EventKindLateness})

	assert.Equal(t, 1, slackSender.count())
	assert.Equal(t, 1, webhookSender.count())
}

func TestDispatchAbsorbsSenderErrors(t *testing.T) {
	failing := &recordingSender{err: errors.New("boom")}
	healthy := &recordingSender{}

	slackBinding := binding(model.ChannelTypeSlack, true, false, false)
	webhookBinding := binding(model.ChannelTypeWebhook, true, false, false)
	webhookBinding.Channel.ID = "chan-2"

	repo := &stubSettingRepo{bindings: []*model.ChannelBinding{slackBinding, webhookBinding}}

	d, err := New(Options{
		Settings: repo,
		Senders: map[model.ChannelType]notify.Sender{
			model.ChannelTypeSlack:   failing,
			model.ChannelTypeWebhook: healthy,
		},
	})
	require.NoError(t, err)

	// One channel failing must not stop the other from being attempted.
	d.Dispatch(context.Background(), notify.EventPayload{JobID: "job-1", EventKind: notify.EventKindFailure})

	assert.Equal(t, 1, failing.count())
	assert.Equal(t, 1, healthy.count())
}

func TestDispatchNoSenderForType(t *testing.T) {
	repo := &stubSettingRepo{bindings: []*model.ChannelBinding{
		binding(model.ChannelTypePagerDuty, true, false, false),
	}}

	d, err := New(Options{
		Settings: repo,
		Senders:  map[model.ChannelType]notify.Sender{model.ChannelTypeSlack: &recordingSender{}},
	})
	require.NoError(t, err)

	// Must not panic or block when no sender covers the channel type.
	d.Dispatch(context.Background(), notify.EventPayload{JobID: "job-1", EventKind: notify.EventKindFailure})
}

func TestDispatchRepositoryError(t *testing.T) {
	sender := &recordingSender{}
	repo := &stubSettingRepo{err: errors.New("db down")}

	d, err := New(Options{
		Settings: repo,
		Senders:  map[model.ChannelType]notify.Sender{model.ChannelTypeSlack: sender},
	})
	require.NoError(t, err)

	d.Dispatch(context.Background(), notify.EventPayload{JobID: "job-1", EventKind: notify.EventKindFailure})
	assert.Equal(t, 0, sender.count())
}

func TestSendTimeoutApplied(t *testing.T) {
	done := make(chan struct{})
	slow := notify.SenderFunc(func(ctx context.Context, _ model.ChannelConfig, _ notify.EventPayload) error {
		defer close(done)
		deadline, ok := ctx.Deadline()
		if !ok {
			return errors.New("expected deadline")
		}
		if time.Until(deadline) > 100*time.Millisecond {
			return errors.New("deadline too far out")
		}
		return nil
	})

	repo := &stubSettingRepo{bindings: []*model.ChannelBinding{
		binding(model.ChannelTypeSlack, true, false, false),
	}}

	d, err := New(Options{
		Settings:    repo,
		Senders:     map[model.ChannelType]notify.Sender{model.ChannelTypeSlack: slow},
		SendTimeout: 50 * time.Millisecond,
	})
	require.NoError(t, err)

	d.Dispatch(context.Background(), notify.EventPayload{JobID: "job-1", EventKind: notify.EventKindFailure})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sender was never invoked")
	}
}
