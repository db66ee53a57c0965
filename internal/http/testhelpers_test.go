package httpx

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/pulsewatch/pulsewatch/internal/domain/auth"
	"github.com/pulsewatch/pulsewatch/internal/mocks"
	"github.com/pulsewatch/pulsewatch/internal/service"
)

const testAccountID = "acct-1"

// staticVerifier accepts the token "valid" and rejects everything else.
type staticVerifier struct {
	accountID string
}

func (v staticVerifier) Verify(_ context.Context, rawToken string) (domainauth.Identity, error) {
	if rawToken != "valid" {
		return domainauth.Identity{}, errors.New("bad token")
	}
	return domainauth.Identity{AccountID: v.accountID}, nil
}

// testRepos bundles the mocked repositories behind a fully wired router.
type testRepos struct {
	jobs       *mocks.MockMonitoredJobRepository
	executions *mocks.MockExecutionRepository
	channels   *mocks.MockChannelRepository
	settings   *mocks.MockSettingRepository
}

func newTestRouter(t *testing.T) (http.Handler, *testRepos) {
	t.Helper()
	ctrl := gomock.NewController(t)

	repos := &testRepos{
		jobs:       mocks.NewMockMonitoredJobRepository(ctrl),
		executions: mocks.NewMockExecutionRepository(ctrl),
		channels:   mocks.NewMockChannelRepository(ctrl),
		settings:   mocks.NewMockSettingRepository(ctrl),
	}

	jobSvc, err := service.NewJobService(service.JobServiceOptions{
		Repo:       repos.jobs,
		Executions: repos.executions,
	})
	require.NoError(t, err)

	pingSvc, err := service.NewPingService(service.PingServiceOptions{
		Jobs:       repos.jobs,
		Executions: repos.executions,
	})
	require.NoError(t, err)

	channelSvc, err := service.NewChannelService(service.ChannelServiceOptions{Repo: repos.channels})
	require.NoError(t, err)

	settingSvc, err := service.NewSettingService(service.SettingServiceOptions{
		Settings: repos.settings,
		Jobs:     repos.jobs,
		Channels: repos.channels,
	})
	require.NoError(t, err)

	router := NewRouter(RouterServices{
		Jobs:     jobSvc,
		Pings:    pingSvc,
		Channels: channelSvc,
		Settings: settingSvc,
		Verifier: staticVerifier{accountID: testAccountID},
		BaseURL:  "http://pulsewatch.test",
	})
	return router, repos
}
