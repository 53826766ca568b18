package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// chatworkBaseURL is the Chatwork REST API endpoint
const chatworkBaseURL = "https://api.chatwork.com/v2"

// ChatworkSender posts incident messages to Chatwork rooms
type ChatworkSender struct {
	apiToken   string
	baseURL    string
	httpClient *http.Client
}

// NewChatworkSender creates a Chatwork client with the given API token
func NewChatworkSender(apiToken string) *ChatworkSender {
	return &ChatworkSender{
		apiToken: apiToken,
		baseURL:  chatworkBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SendGroupMessage posts a message to a Chatwork room
func (c *ChatworkSender) SendGroupMessage(ctx context.Context, groupID, message string) error {
	endpoint := fmt.Sprintf("%s/rooms/%s/messages", c.baseURL, url.PathEscape(groupID))

	form := url.Values{}
	form.Set("body", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create chatwork request: %w", err)
	}
	req.Header.Set("X-ChatWorkToken", c.apiToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("chatwork request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("chatwork API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
