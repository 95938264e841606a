package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rpupo63/studio-site-backend/config"
	"github.com/rpupo63/studio-site-backend/errs"
	"github.com/rpupo63/studio-site-backend/models"
	"github.com/rs/zerolog/log"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// EmailNotifier sends emails through the Resend API.
type EmailNotifier struct {
	apiKey     string
	from       string
	recipients []string
	adminURL   string
	endpoint   string
	httpClient *http.Client
}

// NewEmailNotifier reads its settings from the config map.
//
// Required keys:
//   - RESEND_API_KEY: Your Resend API key
//   - RESEND_FROM_EMAIL: The sender address (e.g. "Studio <hello@...>")
//   - NOTIFY_EMAILS: comma separated recipients of new inquiry alerts
func NewEmailNotifier(cfg map[string]string) (*EmailNotifier, error) {
	apiKey := config.GetString(cfg, "RESEND_API_KEY", "")
	if apiKey == "" {
		return nil, errs.NewConfigMissingError("RESEND_API_KEY")
	}

	fromEmail := config.GetString(cfg, "RESEND_FROM_EMAIL", "")
	if fromEmail == "" {
		return nil, errs.NewConfigMissingError("RESEND_FROM_EMAIL")
	}

	recipients := config.GetStrings(cfg, "NOTIFY_EMAILS", nil)
	if len(recipients) == 0 {
		return nil, errs.NewConfigMissingError("NOTIFY_EMAILS")
	}

	return &EmailNotifier{
		apiKey:     apiKey,
		from:       fromEmail,
		recipients: recipients,
		adminURL:   GetAdminURL(cfg),
		endpoint:   config.GetString(cfg, "RESEND_ENDPOINT", resendEndpoint),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

func (n *EmailNotifier) Channel() string {
	return "email"
}

func (n *EmailNotifier) NotifyNewInquiry(ctx context.Context, inquiry models.Inquiry) error {
	link := BuildInquiryURL(n.adminURL, inquiry.ID)
	// replies from the studio go straight to the prospect
	return n.SendEmail(ctx, ResendEmailRequest{
		To:      n.recipients,
		ReplyTo: inquiry.Email,
		Subject: inquirySummary(inquiry),
		Html:    inquiryHTML(inquiry, link),
	})
}

// SendEmail sends payload from the configured sender address
func (n *EmailNotifier) SendEmail(ctx context.Context, payload ResendEmailRequest) error {
	if len(payload.To) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}
	payload.From = n.from

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return errs.NewNotificationError(n.Channel(), err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return errs.NewNotificationError(n.Channel(), fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message))
		}
		return errs.NewNotificationError(n.Channel(), fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes)))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		log.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		log.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	}

	return nil
}
