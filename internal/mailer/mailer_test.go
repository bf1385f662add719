package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/EhteshamRajpot/shop-o-backend/internal/app/config"
	"github.com/EhteshamRajpot/shop-o-backend/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent  []*gomail.Message
	err   error
	block chan struct{}
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if f.block != nil {
		<-f.block
	}
	f.sent = append(f.sent, m...)
	return f.err
}

func smtpConfig() config.SMTPConfig {
	return config.SMTPConfig{
		Host:        "smtp.example.com",
		Port:        465,
		Username:    "noreply@example.com",
		Password:    "secret",
		Encryption:  "ssl",
		SendTimeout: time.Second,
	}
}

func TestNewSMTPMailer_Validation(t *testing.T) {
	_, err := NewSMTPMailer(config.SMTPConfig{}, logger.NewNopLogger())
	assert.Error(t, err)

	m, err := NewSMTPMailer(smtpConfig(), logger.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, "noreply@example.com", m.cfg.SenderEmail)
}

func TestSMTPMailer_Send(t *testing.T) {
	m, err := NewSMTPMailer(smtpConfig(), logger.NewNopLogger())
	require.NoError(t, err)
	fd := &fakeDialer{}
	m.d = fd

	err = m.Send(context.Background(), Message{To: "a@x.io", Subject: "Activate your account", Text: "hello"})
	require.NoError(t, err)
	require.Len(t, fd.sent, 1)
	assert.Equal(t, []string{"a@x.io"}, fd.sent[0].GetHeader("To"))
	assert.Equal(t, []string{"Activate your account"}, fd.sent[0].GetHeader("Subject"))
}

func TestSMTPMailer_SendErrors(t *testing.T) {
	m, err := NewSMTPMailer(smtpConfig(), logger.NewNopLogger())
	require.NoError(t, err)

	t.Run("transport failure is returned", func(t *testing.T) {
		m.d = &fakeDialer{err: errors.New("535 authentication failed")}
		err := m.Send(context.Background(), Message{To: "a@x.io", Subject: "s", Text: "t"})
		require.Error(t, err)
		assert.Equal(t, "535 authentication failed", err.Error())
	})

	t.Run("no recipient", func(t *testing.T) {
		m.d = &fakeDialer{}
		assert.Error(t, m.Send(context.Background(), Message{Subject: "s", Text: "t"}))
	})

	t.Run("no body", func(t *testing.T) {
		m.d = &fakeDialer{}
		assert.Error(t, m.Send(context.Background(), Message{To: "a@x.io", Subject: "s"}))
	})

	t.Run("cancelled context", func(t *testing.T) {
		block := make(chan struct{})
		defer close(block)
		m.d = &fakeDialer{block: block}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := m.Send(ctx, Message{To: "a@x.io", Subject: "s", Text: "t"})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestMailerSend_Send(t *testing.T) {
	var got mailerSendRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("X-Message-Id", "msg-1")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	m, err := NewMailerSend(config.MailerSendConfig{APIKey: "key", FromEmail: "shop@example.com", FromName: "Shop-O"},
		logger.NewNopLogger(), WithAPIURL(srv.URL))
	require.NoError(t, err)

	err = m.Send(context.Background(), Message{To: "a@x.io", Subject: "Activate your shop", Text: "hi"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer key", auth)
	assert.Equal(t, "Activate your shop", got.Subject)
	require.Len(t, got.To, 1)
	assert.Equal(t, "a@x.io", got.To[0].Email)
	assert.Equal(t, "shop@example.com", got.From.Email)
}

func TestMailerSend_NonAcceptedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	m, err := NewMailerSend(config.MailerSendConfig{APIKey: "key", FromEmail: "shop@example.com"},
		logger.NewNopLogger(), WithAPIURL(srv.URL))
	require.NoError(t, err)

	err = m.Send(context.Background(), Message{To: "a@x.io", Subject: "s", Text: "t"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestNew_SelectsProvider(t *testing.T) {
	log := logger.NewNopLogger()

	m, err := New(config.MailConfig{Provider: ProviderSMTP, SMTP: smtpConfig()}, log)
	require.NoError(t, err)
	assert.IsType(t, &SMTPMailer{}, m)

	m, err = New(config.MailConfig{Provider: ProviderMailerSend, MailerSend: config.MailerSendConfig{APIKey: "k", FromEmail: "f@x.io"}}, log)
	require.NoError(t, err)
	assert.IsType(t, &MailerSend{}, m)

	_, err = New(config.MailConfig{Provider: "pigeon"}, log)
	assert.Error(t, err)
}
