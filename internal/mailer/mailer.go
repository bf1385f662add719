// Package mailer delivers transactional email through SMTP or MailerSend.
package mailer

import (
	"context"
	"fmt"

	"github.com/EhteshamRajpot/shop-o-backend/internal/app/config"
	"github.com/EhteshamRajpot/shop-o-backend/internal/platform/logger"
)

type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

const (
	ProviderSMTP       = "smtp"
	ProviderMailerSend = "mailersend"
)

// New builds the mailer selected by cfg.Provider.
func New(cfg config.MailConfig, log logger.Logger) (Mailer, error) {
	switch cfg.Provider {
	case ProviderSMTP, "":
		return NewSMTPMailer(cfg.SMTP, log)
	case ProviderMailerSend:
		return NewMailerSend(cfg.MailerSend, log)
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
	}
}
