package notify

import (
	"context"
	"log"
	"time"
)

// ChatSender posts a message to a chat group
type ChatSender interface {
	SendGroupMessage(ctx context.Context, groupID, message string) error
}

// EmailSender delivers an email to a single recipient
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// SMSSender delivers a text message to a single phone number
type SMSSender interface {
	SendSMS(ctx context.Context, phone, message string) error
}

// SimulatedSender is the default provider when no real channel is configured.
// It logs the delivery and succeeds after an artificial delay, matching how a
// staging environment behaves without live credentials.
type SimulatedSender struct {
	Delay time.Duration
}

func (s *SimulatedSender) sleep(ctx context.Context) error {
	if s.Delay <= 0 {
		return nil
	}
	select {
	case <-time.After(s.Delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SendGroupMessage implements ChatSender
func (s *SimulatedSender) SendGroupMessage(ctx context.Context, groupID, message string) error {
	if err := s.sleep(ctx); err != nil {
		return err
	}
	log.Printf("notify: [simulated chat] group=%s len=%d", groupID, len(message))
	return nil
}

// SendEmail implements EmailSender
func (s *SimulatedSender) SendEmail(ctx context.Context, to, subject, body string) error {
	if err := s.sleep(ctx); err != nil {
		return err
	}
	log.Printf("notify: [simulated email] to=%s subject=%q", to, subject)
	return nil
}

// SendSMS implements SMSSender
func (s *SimulatedSender) SendSMS(ctx context.Context, phone, message string) error {
	if err := s.sleep(ctx); err != nil {
		return err
	}
	log.Printf("notify: [simulated sms] to=%s len=%d", phone, len(message))
	return nil
}
