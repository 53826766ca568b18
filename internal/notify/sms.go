package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SMSGatewaySender delivers texts through a JSON HTTP gateway
// (Twilio-compatible relay or an in-house SMS bridge).
type SMSGatewaySender struct {
	endpoint   string
	apiKey     string
	from       string
	httpClient *http.Client
}

// NewSMSGatewaySender creates an SMS sender for the given gateway endpoint
func NewSMSGatewaySender(endpoint, apiKey, from string) *SMSGatewaySender {
	return &SMSGatewaySender{
		endpoint: endpoint,
		apiKey:   apiKey,
		from:     from,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type smsGatewayRequest struct {
	To   string `json:"to"`
	From string `json:"from"`
	Body string `json:"body"`
}

// SendSMS posts one text message to the gateway
func (s *SMSGatewaySender) SendSMS(ctx context.Context, phone, message string) error {
	payload, err := json.Marshal(smsGatewayRequest{
		To:   phone,
		From: s.from,
		Body: message,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create sms request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("sms gateway returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
