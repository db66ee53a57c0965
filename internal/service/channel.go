package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pulsewatch/pulsewatch/internal/core"
	"github.com/pulsewatch/pulsewatch/internal/data"
	"github.com/pulsewatch/pulsewatch/internal/domain/model"
)

// ErrVerificationFailed is returned when a verification token does not match
// or the channel is already verified.
var ErrVerificationFailed = errors.New("channel verification failed")

// ChannelServiceOptions groups dependencies for ChannelService.
type ChannelServiceOptions struct {
	Repo   core.ChannelRepository // Required: channel store
	Logger *slog.Logger           // Optional: structured logger
}

// ChannelService manages notification channels and their verification
// lifecycle. Email channels are born unverified and must present the minted
// token before the dispatcher will use them.
type ChannelService struct {
	repo   core.ChannelRepository
	logger *slog.Logger
}

// NewChannelService constructs a new ChannelService.
func NewChannelService(opts ChannelServiceOptions) (*ChannelService, error) {
	if opts.Repo == nil {
		return nil, errors.New("ChannelRepository is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ChannelService{
		repo:   opts.Repo,
		logger: logger.With("component", "channel_service"),
	}, nil
}

// Create registers a notification channel. Non-email channels are immediately
// usable; email channels come back unverified with a fresh verification token
// on the returned struct.
func (s *ChannelService) Create(
	ctx context.Context,
	accountID string,
	req *model.CreateChannelRequest,
) (*model.NotificationChannel, error) {
	if accountID == "" {
		return nil, errors.New("account id is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ch := &model.NotificationChannel{
		ID:         uuid.NewString(),
		AccountID:  accountID,
		Type:       req.Type,
		Name:       req.Name,
		Config:     req.Config,
		IsVerified: req.Type.VerifiedByDefault(),
	}
	if !ch.IsVerified {
		ch.VerificationToken = uuid.NewString()
	}

	if err := s.repo.Create(ctx, ch); err != nil {
		return nil, fmt.Errorf("create channel: %w", err)
	}

	s.logger.InfoContext(ctx, "channel created",
		"channel_id", ch.ID,
		"type", ch.Type,
		"verified", ch.IsVerified,
	)
	return ch, nil
}

// GetByID returns one channel owned by the account.
func (s *ChannelService) GetByID(
	ctx context.Context,
	accountID, id string,
) (*model.NotificationChannel, error) {
	return s.repo.GetByID(ctx, accountID, id)
}

// List returns all channels owned by the account.
func (s *ChannelService) List(
	ctx context.Context,
	accountID string,
) ([]*model.NotificationChannel, error) {
	return s.repo.List(ctx, accountID)
}

// Update applies a partial edit. Changing the destination of an email channel
// resets verification: the new address has not proven ownership, so a new
// token is minted and the channel drops out of dispatch until verified again.
func (s *ChannelService) Update(
	ctx context.Context,
	accountID, id string,
	req *model.UpdateChannelRequest,
) (*model.NotificationChannel, error) {
	ch, err := s.repo.GetByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(ch.Type); err != nil {
		return nil, err
	}

	if req.Name != nil {
		ch.Name = *req.Name
	}
	if req.Config != nil && !ch.Config.Equal(*req.Config) {
		ch.Config = *req.Config
		if !ch.Type.VerifiedByDefault() {
			ch.IsVerified = false
			ch.VerificationToken = uuid.NewString()
			s.logger.InfoContext(ctx, "channel verification reset after config change",
				"channel_id", ch.ID)
		}
	}

	updated, err := s.repo.Update(ctx, ch)
	if err != nil {
		return nil, fmt.Errorf("update channel: %w", err)
	}
	if !updated {
		return nil, data.ErrChannelNotFound
	}

	s.logger.InfoContext(ctx, "channel updated", "channel_id", ch.ID)
	return ch, nil
}

// Verify consumes a verification token and marks the channel verified.
func (s *ChannelService) Verify(ctx context.Context, accountID, id, token string) error {
	// Resolve first so an unknown id surfaces as not-found rather than a
	// generic verification failure.
	if _, err := s.repo.GetByID(ctx, accountID, id); err != nil {
		return err
	}

	verified, err := s.repo.MarkVerified(ctx, accountID, id, token)
	if err != nil {
		return fmt.Errorf("verify channel: %w", err)
	}
	if !verified {
		return ErrVerificationFailed
	}

	s.logger.InfoContext(ctx, "channel verified", "channel_id", id)
	return nil
}

// Delete removes a channel; bindings referencing it cascade away.
func (s *ChannelService) Delete(ctx context.Context, accountID, id string) error {
	deleted, err := s.repo.Delete(ctx, accountID, id)
	if err != nil {
		return fmt.Errorf("delete channel: %w", err)
	}
	if !deleted {
		return data.ErrChannelNotFound
	}

	s.logger.InfoContext(ctx, "channel deleted", "channel_id", id)
	return nil
}
