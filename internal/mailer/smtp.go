package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/EhteshamRajpot/shop-o-backend/internal/app/config"
	"github.com/EhteshamRajpot/shop-o-backend/internal/platform/logger"
	"gopkg.in/gomail.v2"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPMailer struct {
	cfg config.SMTPConfig
	log logger.Logger
	d   dialer
}

func NewSMTPMailer(cfg config.SMTPConfig, log logger.Logger) (*SMTPMailer, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, errors.New("SMTP host and port must be configured")
	}
	if cfg.SenderEmail == "" {
		cfg.SenderEmail = cfg.Username
	}
	if cfg.SenderEmail == "" {
		return nil, errors.New("SMTP sender email must be configured")
	}

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)

	serverName := cfg.ServerName
	if serverName == "" {
		serverName = cfg.Host
	}
	switch strings.ToLower(cfg.Encryption) {
	case "ssl":
		d.SSL = true
		d.TLSConfig = &tls.Config{ServerName: serverName, MinVersion: tls.VersionTLS12}
	case "tls", "starttls":
		d.TLSConfig = &tls.Config{ServerName: serverName, MinVersion: tls.VersionTLS12}
	}

	return &SMTPMailer{
		cfg: cfg,
		log: log.Named("smtp_mailer"),
		d:   d,
	}, nil
}

func (s *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return errors.New("no recipient provided for email")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.SenderEmail)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)

	switch {
	case msg.HTML != "":
		m.SetBody("text/html", msg.HTML)
		if msg.Text != "" {
			m.AddAlternative("text/plain", msg.Text)
		}
	case msg.Text != "":
		m.SetBody("text/plain", msg.Text)
	default:
		return errors.New("email body (HTML or Text) must be provided")
	}

	if s.cfg.SendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.SendTimeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() {
		done <- s.d.DialAndSend(m)
	}()

	start := time.Now()
	select {
	case <-ctx.Done():
		s.log.Warnf("Email to %s (subject: %s) cancelled or timed out: %v", msg.To, msg.Subject, ctx.Err())
		return fmt.Errorf("email sending cancelled or timed out: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			s.log.Errorf("Failed to send email to %s, subject '%s': %v", msg.To, msg.Subject, err)
			return err
		}
	}

	s.log.Infow("Email sent", "to", msg.To, "subject", msg.Subject, "took", time.Since(start))
	return nil
}
