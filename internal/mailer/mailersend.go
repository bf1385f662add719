package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/EhteshamRajpot/shop-o-backend/internal/app/config"
	"github.com/EhteshamRajpot/shop-o-backend/internal/platform/logger"
)

const mailerSendAPIURL = "https://api.mailersend.com/v1/email"

type MailerSend struct {
	apiKey    string
	fromEmail string
	fromName  string
	apiURL    string
	client    *http.Client
	log       logger.Logger
}

type MailerSendOption func(*MailerSend)

// WithAPIURL points the client at another endpoint.
func WithAPIURL(url string) MailerSendOption {
	return func(m *MailerSend) { m.apiURL = url }
}

func WithHTTPClient(c *http.Client) MailerSendOption {
	return func(m *MailerSend) { m.client = c }
}

func NewMailerSend(cfg config.MailerSendConfig, log logger.Logger, opts ...MailerSendOption) (*MailerSend, error) {
	if cfg.APIKey == "" || cfg.FromEmail == "" {
		return nil, errors.New("MailerSend API key and from email must be configured")
	}
	m := &MailerSend{
		apiKey:    cfg.APIKey,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		apiURL:    mailerSendAPIURL,
		client:    &http.Client{Timeout: 10 * time.Second},
		log:       log.Named("mailersend"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

type mailerSendAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type mailerSendRequest struct {
	From    mailerSendAddress   `json:"from"`
	To      []mailerSendAddress `json:"to"`
	Subject string              `json:"subject"`
	Text    string              `json:"text,omitempty"`
	HTML    string              `json:"html,omitempty"`
}

func (m *MailerSend) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return errors.New("no recipient provided for email")
	}

	payload, err := json.Marshal(mailerSendRequest{
		From:    mailerSendAddress{Email: m.fromEmail, Name: m.fromName},
		To:      []mailerSendAddress{{Email: msg.To}},
		Subject: msg.Subject,
		Text:    msg.Text,
		HTML:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.apiURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		m.log.Errorw("Failed to send request to MailerSend", "to", msg.To, "error", err)
		return fmt.Errorf("failed to send request to MailerSend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		m.log.Errorw("MailerSend API request failed", "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("MailerSend API request failed with status code %d", resp.StatusCode)
	}

	m.log.Infow("Email sent via MailerSend", "to", msg.To, "message_id", resp.Header.Get("X-Message-Id"))
	return nil
}
