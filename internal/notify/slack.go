package notify

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// SlackSender posts incident messages to Slack channels. It is an
// alternative chat transport to Chatwork, selected by configuration; the
// routing policy sees both as the chatwork channel.
type SlackSender struct {
	client *slack.Client
}

// NewSlackSender creates a Slack chat sender with the given bot token
func NewSlackSender(botToken string) *SlackSender {
	return &SlackSender{
		client: slack.New(botToken),
	}
}

// SendGroupMessage posts a message to a Slack channel
func (s *SlackSender) SendGroupMessage(ctx context.Context, groupID, message string) error {
	_, _, err := s.client.PostMessageContext(ctx, groupID,
		slack.MsgOptionText(message, false),
		slack.MsgOptionDisableLinkUnfurl(),
	)
	if err != nil {
		return fmt.Errorf("failed to post to Slack channel %s: %w", groupID, err)
	}
	return nil
}
