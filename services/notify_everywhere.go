package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rpupo63/studio-site-backend/models"
	"github.com/rs/zerolog/log"
)

// InquiryNotifier tells the studio about a freshly submitted inquiry.
type InquiryNotifier interface {
	Channel() string
	NotifyNewInquiry(ctx context.Context, inquiry models.Inquiry) error
}

// NotifyEverywhere fans a new inquiry out to every notifier whose channel is
// listed in channels. Channel names are case-insensitive; an empty list
// disables notifications.
//
// Every selected notifier is attempted even when earlier ones fail; the
// failures are combined into one error.
type NotifyEverywhere struct {
	notifiers []InquiryNotifier
	channels  []string
}

func NewNotifyEverywhere(channels []string, notifiers ...InquiryNotifier) *NotifyEverywhere {
	return &NotifyEverywhere{notifiers: notifiers, channels: channels}
}

func (n *NotifyEverywhere) Channel() string {
	return "all"
}

func (n *NotifyEverywhere) NotifyNewInquiry(ctx context.Context, inquiry models.Inquiry) error {
	var failures []string
	var successes []string

	for _, notifier := range n.notifiers {
		if !contains(n.channels, notifier.Channel()) {
			continue
		}

		log.Info().Str("channel", notifier.Channel()).Uint("inquiryID", inquiry.ID).Msg("Sending new inquiry notification...")
		if err := notifier.NotifyNewInquiry(ctx, inquiry); err != nil {
			log.Error().Err(err).Str("channel", notifier.Channel()).Msg("Failed to send new inquiry notification")
			failures = append(failures, fmt.Sprintf("%s: %v", notifier.Channel(), err))
			continue
		}
		successes = append(successes, notifier.Channel())
	}

	if len(successes) > 0 {
		log.Info().Strs("channels", successes).Msg("Sent new inquiry notifications")
	}

	if len(failures) > 0 {
		return fmt.Errorf("some channels failed: %s", strings.Join(failures, "; "))
	}
	return nil
}
