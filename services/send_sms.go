package services

import (
	"context"

	"github.com/rpupo63/studio-site-backend/config"
	"github.com/rpupo63/studio-site-backend/errs"
	"github.com/rpupo63/studio-site-backend/models"
	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// smsMaxBody keeps alerts within a couple of SMS segments.
const smsMaxBody = 300

// messageCreator is the part of the Twilio REST API the SMS notifier uses.
type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// SMSNotifier texts new inquiry alerts through Twilio. A "whatsapp:" prefix on
// both numbers sends through WhatsApp instead.
type SMSNotifier struct {
	api  messageCreator
	from string
	to   string
}

func NewSMSNotifier(cfg map[string]string) (*SMSNotifier, error) {
	accountSID := config.GetString(cfg, "TWILIO_ACCOUNT_SID", "")
	if accountSID == "" {
		return nil, errs.NewConfigMissingError("TWILIO_ACCOUNT_SID")
	}
	authToken := config.GetString(cfg, "TWILIO_AUTH_TOKEN", "")
	if authToken == "" {
		return nil, errs.NewConfigMissingError("TWILIO_AUTH_TOKEN")
	}
	from := config.GetString(cfg, "TWILIO_FROM_NUMBER", "")
	if from == "" {
		return nil, errs.NewConfigMissingError("TWILIO_FROM_NUMBER")
	}
	to := config.GetString(cfg, "NOTIFY_PHONE", "")
	if to == "" {
		return nil, errs.NewConfigMissingError("NOTIFY_PHONE")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &SMSNotifier{api: client.Api, from: from, to: to}, nil
}

func (n *SMSNotifier) Channel() string {
	return "sms"
}

func (n *SMSNotifier) NotifyNewInquiry(ctx context.Context, inquiry models.Inquiry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body := inquirySummary(inquiry)
	if runes := []rune(body); len(runes) > smsMaxBody {
		body = string(runes[:smsMaxBody-3]) + "..."
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(n.to)
	params.SetFrom(n.from)
	params.SetBody(body)

	resp, err := n.api.CreateMessage(params)
	if err != nil {
		return errs.NewNotificationError(n.Channel(), err)
	}
	if resp != nil && resp.Sid != nil {
		log.Info().Str("messageSid", *resp.Sid).Msg("Successfully sent SMS via Twilio")
	}
	return nil
}
