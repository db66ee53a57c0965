package bootstrap

import (
	"log/slog"

	"github.com/pulsewatch/pulsewatch/config"
	"github.com/pulsewatch/pulsewatch/internal/domain/model"
	"github.com/pulsewatch/pulsewatch/internal/notify"
	"github.com/pulsewatch/pulsewatch/internal/notify/email"
	"github.com/pulsewatch/pulsewatch/internal/notify/pagerduty"
	"github.com/pulsewatch/pulsewatch/internal/notify/slack"
	"github.com/pulsewatch/pulsewatch/internal/notify/webhook"
)

// buildSenders constructs one sender per channel type the dispatcher can
// deliver to. Slack, webhook and PagerDuty senders carry their credentials on
// the channel itself, so they are always available. Email needs a SendGrid
// key at the process level and is skipped when none is configured.
func buildSenders(cfg config.NotifierConfig, logger *slog.Logger) (map[model.ChannelType]notify.Sender, error) {
	senders := map[model.ChannelType]notify.Sender{
		model.ChannelTypeSlack: slack.NewSender(slack.Config{
			Username: cfg.Slack.Username,
			Timeout:  cfg.Slack.Timeout,
		}),
		model.ChannelTypeWebhook: webhook.NewSender(webhook.Config{
			Timeout: cfg.SendTimeout,
		}),
		model.ChannelTypePagerDuty: pagerduty.NewSender(pagerduty.Config{
			Source:    cfg.PagerDuty.Source,
			Component: cfg.PagerDuty.Component,
			Timeout:   cfg.PagerDuty.Timeout,
		}),
	}

	if cfg.SendGrid.IsEnabled() {
		emailSender, err := email.NewSender(email.Config{
			APIKey:    cfg.SendGrid.APIKey,
			FromEmail: cfg.SendGrid.FromEmail,
			FromName:  cfg.SendGrid.FromName,
		})
		if err != nil {
			return nil, err
		}
		senders[model.ChannelTypeEmail] = emailSender
	} else if logger != nil {
		logger.Warn("sendgrid not configured, email channels will not deliver")
	}

	return senders, nil
}
