// Package mocks provides gomock-generated test doubles for the repository
// interfaces in internal/core.
//
// To regenerate after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	repo := mocks.NewMockMonitoredJobRepository(ctrl)
//	repo.EXPECT().GetByPingToken(gomock.Any(), "token").Return(job, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=core_mocks.go github.com/pulsewatch/pulsewatch/internal/core MonitoredJobRepository,ExecutionRepository,ChannelRepository,SettingRepository,CacheRepository
