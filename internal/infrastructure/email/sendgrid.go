package email

import (
	"context"
	"fmt"

	"uplift-backend/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
)

// Sender delivers a single email.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type Message struct {
	To      string
	ToName  string
	Subject string
	Body    string
	HTML    string
}

// SendGridSender sends emails via the SendGrid v3 API.
type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	log       *logrus.Logger
}

func NewSendGridSender(cfg config.SendGridConfig, log *logrus.Logger) *SendGridSender {
	return &SendGridSender{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		log:       log,
	}
}

func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(msg.ToName, msg.To)

	html := msg.HTML
	if html == "" {
		html = msg.Body
	}
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.Body, html)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}

	s.log.WithFields(logrus.Fields{"to": msg.To, "status": resp.StatusCode}).Debug("Email sent via SendGrid")
	return nil
}

// StubSender logs instead of sending. Used when no API key is configured.
type StubSender struct {
	log *logrus.Logger
}

func NewStubSender(log *logrus.Logger) *StubSender {
	return &StubSender{log: log}
}

func (s *StubSender) Send(ctx context.Context, msg Message) error {
	s.log.WithFields(logrus.Fields{"to": msg.To, "subject": msg.Subject}).Info("Email delivery disabled, skipping send")
	return nil
}

// NewSender picks SendGrid when an API key is configured and the stub otherwise.
func NewSender(cfg config.SendGridConfig, log *logrus.Logger) Sender {
	if cfg.APIKey == "" {
		return NewStubSender(log)
	}
	return NewSendGridSender(cfg, log)
}
