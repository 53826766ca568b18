// Package advisor integrates an OpenAI-compatible completion endpoint for
// best-effort operational advice. Every call degrades to a safe default on
// failure; callers never see an error affect their control flow.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/opswatch/opswatch/internal/database"
	"gorm.io/gorm"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Client performs one-shot advisory calls
type Client struct {
	db         *gorm.DB
	httpClient *http.Client
}

// NewClient creates an advisory client. Settings (API key, model, endpoint)
// are read from the llm_settings row on every call so they can be changed
// at runtime.
func NewClient(db *gorm.DB) *Client {
	return &Client{
		db: db,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// LogAnalysis is the structured result extracted from the advisory prose
type LogAnalysis struct {
	Summary  string            `json:"summary"`
	Severity database.Severity `json:"severity"`
	Actions  []string          `json:"actions"`
}

// FallbackAnalysis is returned when the advisory service is unavailable or
// unconfigured
func FallbackAnalysis() *LogAnalysis {
	return &LogAnalysis{
		Summary:  "Automatic analysis unavailable. Review the raw log output manually.",
		Severity: database.SeverityMinor,
		Actions:  fallbackActions(),
	}
}

// AnalyzeLogs summarizes raw log text for a system, extracting a severity
// token and a short action list from the free-text response. Failures are
// logged and degrade to the fallback analysis.
func (c *Client) AnalyzeLogs(ctx context.Context, systemName, logContent string) *LogAnalysis {
	prompt := fmt.Sprintf(
		"You are an operations engineer. Analyze the following log output from system %q. "+
			"Summarize what is happening, state the severity as one of: down, critical, major, minor, clear, "+
			"and suggest concrete follow-up actions as a bullet list.\n\nLogs:\n%s",
		systemName, logContent)

	response, err := c.complete(ctx, prompt)
	if err != nil {
		log.Printf("advisor: log analysis failed: %v", err)
		return FallbackAnalysis()
	}

	return &LogAnalysis{
		Summary:  response,
		Severity: ExtractSeverity(response),
		Actions:  ExtractActions(response),
	}
}

// TriageAlert requests a free-text operational recommendation for an
// incident. Returns the empty string when the service fails or is not
// configured; no structured extraction is performed.
func (c *Client) TriageAlert(ctx context.Context, severity database.Severity, message string, details database.JSONB) string {
	var detailText string
	if len(details) > 0 {
		if raw, err := json.Marshal(details); err == nil {
			detailText = string(raw)
		}
	}

	prompt := fmt.Sprintf(
		"An alert with severity %q was raised: %s\nDetails: %s\n"+
			"Give a short operational recommendation for the on-call engineer.",
		severity, message, detailText)

	response, err := c.complete(ctx, prompt)
	if err != nil {
		log.Printf("advisor: alert triage failed: %v", err)
		return ""
	}
	return strings.TrimSpace(response)
}

// ========== completion transport ==========

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// complete performs one chat-completion round trip
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	settings, err := database.GetLLMSettings(c.db)
	if err != nil {
		return "", fmt.Errorf("failed to load advisory settings: %w", err)
	}
	if !settings.IsActive() {
		return "", fmt.Errorf("advisory service is not configured")
	}

	baseURL := settings.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	payload, err := json.Marshal(chatRequest{
		Model: settings.Model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens:   512,
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimSuffix(baseURL, "/")+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+settings.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("completion API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion API returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
