package email

import (
	"fmt"

	"fairway_backend/internal/config"
	"fairway_backend/internal/logger"

	gomail "gopkg.in/gomail.v2"
)

// Provider sends transactional mail. Callers treat delivery as best-effort:
// a failed notification never fails the triggering operation.
type Provider interface {
	Send(to, subject, htmlBody string) error
}

type smtpProvider struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPProvider builds a gomail-backed provider from the email config.
func NewSMTPProvider(cfg config.EmailConfig) Provider {
	from := cfg.FromEmail
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromEmail)
	}
	return &smtpProvider{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   from,
	}
}

func (p *smtpProvider) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", p.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

type noopProvider struct{}

// NewNoopProvider logs instead of sending. Used when email is disabled.
func NewNoopProvider() Provider {
	return &noopProvider{}
}

func (p *noopProvider) Send(to, subject, _ string) error {
	logger.Debug("email disabled, skipping send", "to", to, "subject", subject)
	return nil
}

// NewProvider picks the SMTP provider when email is enabled, the noop one
// otherwise.
func NewProvider(cfg config.EmailConfig) Provider {
	if !cfg.Enabled {
		return NewNoopProvider()
	}
	return NewSMTPProvider(cfg)
}
