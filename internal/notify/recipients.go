package notify

import (
	"strings"

	"github.com/opswatch/opswatch/internal/database"
	"gorm.io/gorm"
)

// FallbackChatGroup is used when a system has no configured chat group
const FallbackChatGroup = "GENERAL_GROUP"

// maxLowSeverityEmailRecipients caps the email fan-out for minor/clear alerts
const maxLowSeverityEmailRecipients = 3

// Resolver selects notification recipients for a severity.
// Role tags are matched as case-sensitive substrings of the contact's
// free-text role field; only active contacts are considered.
type Resolver struct {
	db *gorm.DB
}

// NewResolver creates a recipient resolver over the given store
func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// roleMatchesAny reports whether the contact role contains any of the tags
func roleMatchesAny(role string, tags ...string) bool {
	for _, tag := range tags {
		if tag != "" && strings.Contains(role, tag) {
			return true
		}
	}
	return false
}

// EmailRecipients returns the contacts to email for a severity:
//
//	down, critical → role contains "LD" or "leader"
//	major          → role contains "LD" or "BO"
//	anything else  → role contains "BO", first 3 matches
func (r *Resolver) EmailRecipients(severity database.Severity) ([]database.Contact, error) {
	contacts, err := database.ListActiveContacts(r.db)
	if err != nil {
		return nil, err
	}

	var matched []database.Contact
	switch severity {
	case database.SeverityDown, database.SeverityCritical:
		for _, c := range contacts {
			if roleMatchesAny(c.Role, "LD", "leader") {
				matched = append(matched, c)
			}
		}
	case database.SeverityMajor:
		for _, c := range contacts {
			if roleMatchesAny(c.Role, "LD", "BO") {
				matched = append(matched, c)
			}
		}
	default:
		for _, c := range contacts {
			if roleMatchesAny(c.Role, "BO") {
				matched = append(matched, c)
				if len(matched) >= maxLowSeverityEmailRecipients {
					break
				}
			}
		}
	}
	return matched, nil
}

// SMSRecipients returns the contacts to text. SMS fires only for down and
// critical alerts (role contains "LDTT" or "LDP"); every other severity gets
// an empty list and no SMS records at all.
func (r *Resolver) SMSRecipients(severity database.Severity) ([]database.Contact, error) {
	if severity != database.SeverityDown && severity != database.SeverityCritical {
		return nil, nil
	}

	contacts, err := database.ListActiveContacts(r.db)
	if err != nil {
		return nil, err
	}

	var matched []database.Contact
	for _, c := range contacts {
		if roleMatchesAny(c.Role, "LDTT", "LDP") {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

// ChatTarget returns the chat group for a system, or the general fallback
// group when the system is absent or unconfigured
func ChatTarget(system *database.System) string {
	if system == nil || system.ChatGroupID == "" {
		return FallbackChatGroup
	}
	return system.ChatGroupID
}
