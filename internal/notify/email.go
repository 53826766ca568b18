package notify

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPConfig holds the SMTP relay settings for email notifications
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender delivers email notifications through an SMTP relay
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender creates an email sender for the given relay
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	var dialer *gomail.Dialer
	if cfg.Username == "" {
		dialer = &gomail.Dialer{Host: cfg.Host, Port: cfg.Port}
	} else {
		dialer = gomail.NewPlainDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return &SMTPSender{
		dialer: dialer,
		from:   cfg.From,
	}
}

// SendEmail delivers one message to one recipient. The context is checked
// before dialing; gomail itself does not support cancellation mid-send.
func (s *SMTPSender) SendEmail(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
