// Package testhelpers provides data builders for testing
package testhelpers

import (
	"github.com/opswatch/opswatch/internal/database"
)

// ========================================
// System Builder
// ========================================

// SystemBuilder builds System instances for testing
type SystemBuilder struct {
	system database.System
}

// NewSystemBuilder creates a new system builder with defaults
func NewSystemBuilder() *SystemBuilder {
	return &SystemBuilder{
		system: database.System{
			Name:          "test-system",
			Address:       "10.0.0.1",
			SeverityLevel: 3,
			Status:        database.SeverityClear,
		},
	}
}

// WithName sets the system name
func (b *SystemBuilder) WithName(name string) *SystemBuilder {
	b.system.Name = name
	return b
}

// WithStatus sets the current status
func (b *SystemBuilder) WithStatus(status database.Severity) *SystemBuilder {
	b.system.Status = status
	return b
}

// WithChatGroup sets the chat group ID
func (b *SystemBuilder) WithChatGroup(groupID string) *SystemBuilder {
	b.system.ChatGroupID = groupID
	return b
}

// Build returns the constructed system
func (b *SystemBuilder) Build() database.System {
	return b.system
}

// ========================================
// Contact Builder
// ========================================

// ContactBuilder builds Contact instances for testing
type ContactBuilder struct {
	contact database.Contact
}

// NewContactBuilder creates a new contact builder with defaults
func NewContactBuilder() *ContactBuilder {
	return &ContactBuilder{
		contact: database.Contact{
			Name:   "Test Contact",
			Unit:   "Operations",
			Role:   "BO",
			Email:  "contact@example.com",
			Phone:  "+84123456789",
			Active: true,
		},
	}
}

// WithName sets the contact name
func (b *ContactBuilder) WithName(name string) *ContactBuilder {
	b.contact.Name = name
	return b
}

// WithRole sets the free-text role tag
func (b *ContactBuilder) WithRole(role string) *ContactBuilder {
	b.contact.Role = role
	return b
}

// WithEmail sets the email address
func (b *ContactBuilder) WithEmail(email string) *ContactBuilder {
	b.contact.Email = email
	return b
}

// WithPhone sets the phone number
func (b *ContactBuilder) WithPhone(phone string) *ContactBuilder {
	b.contact.Phone = phone
	return b
}

// Inactive marks the contact as inactive
func (b *ContactBuilder) Inactive() *ContactBuilder {
	b.contact.Active = false
	return b
}

// Build returns the constructed contact
func (b *ContactBuilder) Build() database.Contact {
	return b.contact
}

// ========================================
// Alert Builder
// ========================================

// AlertBuilder builds Alert instances for testing
type AlertBuilder struct {
	alert database.Alert
}

// NewAlertBuilder creates a new alert builder with defaults
func NewAlertBuilder() *AlertBuilder {
	return &AlertBuilder{
		alert: database.Alert{
			SystemID: 1,
			Severity: database.SeverityMinor,
			Message:  "test alert message",
		},
	}
}

// WithSystemID sets the owning system ID
func (b *AlertBuilder) WithSystemID(id uint) *AlertBuilder {
	b.alert.SystemID = id
	return b
}

// WithSeverity sets the alert severity
func (b *AlertBuilder) WithSeverity(sev database.Severity) *AlertBuilder {
	b.alert.Severity = sev
	return b
}

// WithMessage sets the alert message
func (b *AlertBuilder) WithMessage(msg string) *AlertBuilder {
	b.alert.Message = msg
	return b
}

// WithDetails sets the structured details
func (b *AlertBuilder) WithDetails(details database.JSONB) *AlertBuilder {
	b.alert.Details = details
	return b
}

// Build returns the constructed alert
func (b *AlertBuilder) Build() database.Alert {
	return b.alert
}

// ========================================
// Incident Builder
// ========================================

// IncidentBuilder builds Incident instances for testing
type IncidentBuilder struct {
	incident database.Incident
}

// NewIncidentBuilder creates a new incident builder with defaults
func NewIncidentBuilder() *IncidentBuilder {
	return &IncidentBuilder{
		incident: database.Incident{
			UUID:        "00000000-0000-0000-0000-000000000001",
			AlertID:     1,
			SystemID:    1,
			Title:       "MINOR: test-system",
			Description: "test alert message",
			Severity:    database.SeverityMinor,
			Status:      database.IncidentStatusOpen,
		},
	}
}

// WithUUID sets the incident UUID
func (b *IncidentBuilder) WithUUID(uuid string) *IncidentBuilder {
	b.incident.UUID = uuid
	return b
}

// WithAlertID sets the source alert ID
func (b *IncidentBuilder) WithAlertID(id uint) *IncidentBuilder {
	b.incident.AlertID = id
	return b
}

// WithSystemID sets the owning system ID
func (b *IncidentBuilder) WithSystemID(id uint) *IncidentBuilder {
	b.incident.SystemID = id
	return b
}

// WithSeverity sets the incident severity
func (b *IncidentBuilder) WithSeverity(sev database.Severity) *IncidentBuilder {
	b.incident.Severity = sev
	return b
}

// WithStatus sets the incident status
func (b *IncidentBuilder) WithStatus(status database.IncidentStatus) *IncidentBuilder {
	b.incident.Status = status
	return b
}

// WithTitle sets the incident title
func (b *IncidentBuilder) WithTitle(title string) *IncidentBuilder {
	b.incident.Title = title
	return b
}

// Build returns the constructed incident
func (b *IncidentBuilder) Build() database.Incident {
	return b.incident
}
