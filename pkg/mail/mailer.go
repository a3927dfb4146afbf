package mail

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/gasanadj/demo-rise360-backend/pkg/log"
)

// Mailer sends transactional email. Delivery is fire-and-forget from the
// caller's point of view; failures are returned for logging only.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// Config holds SMTP configuration.
type Config struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// SMTPMailer implements Mailer over SMTP.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a mailer from SMTP config.
func NewSMTPMailer(cfg Config) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("smtp from address is required")
	}

	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}, nil
}

// NoopMailer drops every message. Used when no SMTP server is
// configured, so environments without mail still boot.
type NoopMailer struct{}

func (NoopMailer) Send(to, subject, htmlBody string) error {
	l := log.L()
	l.Debug().Str("to", to).Str("subject", subject).Msg("mail dropped, no smtp configured")
	return nil
}

// Send delivers a single HTML email.
func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}
