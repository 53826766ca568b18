package notify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/opswatch/opswatch/internal/database"
	"github.com/opswatch/opswatch/internal/utils"
)

// smsMaxDescription caps the alert message inside the single-line SMS variant
const smsMaxDescription = 100

// smsPrefix tags every SMS so recipients can filter on it
const smsPrefix = "[OPS]"

// FormatMessage renders the full multi-section notification body used for
// chatwork and email.
func FormatMessage(incident *database.Incident, alert *database.Alert, system *database.System) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s\n", strings.ToUpper(string(alert.Severity)), system.DisplayName())
	fmt.Fprintf(&b, "Time: %s\n", utils.FormatTimestamp(alert.CreatedAt))
	fmt.Fprintf(&b, "Description: %s\n", alert.Message)

	if len(alert.Details) > 0 {
		b.WriteString("Details:\n")
		// Stable key order so the same alert always renders the same body
		keys := make([]string, 0, len(alert.Details))
		for k := range alert.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s: %v\n", k, alert.Details[k])
		}
	}

	fmt.Fprintf(&b, "Incident: #%d", incident.ID)
	return b.String()
}

// FormatChatMessage renders the chat variant: the full body prefixed with
// the severity emoji marker so rooms can scan urgency at a glance.
func FormatChatMessage(incident *database.Incident, alert *database.Alert, system *database.System) string {
	return fmt.Sprintf("%s %s", database.GetSeverityEmoji(alert.Severity), FormatMessage(incident, alert, system))
}

// FormatSMS renders the abbreviated single-line variant, truncating the
// description to 100 characters.
func FormatSMS(incident *database.Incident, alert *database.Alert, system *database.System) string {
	return fmt.Sprintf("%s %s %s: %s (#%d)",
		smsPrefix,
		strings.ToUpper(string(alert.Severity)),
		system.DisplayName(),
		utils.TruncateText(alert.Message, smsMaxDescription),
		incident.ID,
	)
}

// EmailSubject renders the subject line for email notifications
func EmailSubject(incident *database.Incident) string {
	return fmt.Sprintf("[Incident #%d] %s", incident.ID, incident.Title)
}
