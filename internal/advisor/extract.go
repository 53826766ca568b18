package advisor

import (
	"regexp"
	"strings"

	"github.com/opswatch/opswatch/internal/database"
)

// maxExtractedActions caps the suggested-action list
const maxExtractedActions = 5

// severityPattern matches the first known severity word in the prose,
// case-insensitively
var severityPattern = regexp.MustCompile(`(?i)\b(down|critical|major|minor|clear)\b`)

// bulletPattern matches bullet or numbered list markers at the start of a line
var bulletPattern = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+(.+)$`)

// actionKeywords flag lines that read like an instruction even without a
// list marker
var actionKeywords = []string{"restart", "check", "verify", "investigate", "escalate", "review", "監視", "確認"}

// ExtractSeverity pulls the first severity token out of the advisory prose,
// defaulting to minor when none is present
func ExtractSeverity(text string) database.Severity {
	match := severityPattern.FindString(text)
	if match == "" {
		return database.SeverityMinor
	}
	return database.Severity(strings.ToLower(match))
}

// ExtractActions scans the response for bullet/numbered lines or
// keyword-bearing sentences, capped at 5, with a fixed fallback list when
// nothing is found
func ExtractActions(text string) []string {
	var actions []string
	for _, line := range strings.Split(text, "\n") {
		if len(actions) >= maxExtractedActions {
			break
		}
		if m := bulletPattern.FindStringSubmatch(line); m != nil {
			actions = append(actions, strings.TrimSpace(m[1]))
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(trimmed)
		for _, keyword := range actionKeywords {
			if strings.Contains(lower, keyword) {
				actions = append(actions, trimmed)
				break
			}
		}
	}
	if len(actions) == 0 {
		return fallbackActions()
	}
	if len(actions) > maxExtractedActions {
		actions = actions[:maxExtractedActions]
	}
	return actions
}

// fallbackActions is the fixed suggestion list used when extraction finds
// nothing actionable
func fallbackActions() []string {
	return []string{
		"Review the system logs around the reported timeframe",
		"Check resource utilization on the affected system",
		"Escalate to the on-call leader if the condition persists",
	}
}
