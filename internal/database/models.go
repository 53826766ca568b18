package database

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// JSONB is a custom type for PostgreSQL JSONB columns
type JSONB map[string]interface{}

// Scan implements the sql.Scanner interface
func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = make(map[string]interface{})
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return errors.New("type assertion to []byte failed")
		}
	}
	return json.Unmarshal(bytes, j)
}

// Value implements the driver.Valuer interface
func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// ========== Severity ==========

// Severity is the urgency classification of an alert.
// Informal ordering: down > critical > major > minor > clear.
type Severity string

const (
	SeverityDown     Severity = "down"
	SeverityCritical Severity = "critical"
	SeverityMajor    Severity = "major"
	SeverityMinor    Severity = "minor"
	SeverityClear    Severity = "clear"
)

// KnownSeverities lists all recognized severity values
func KnownSeverities() []Severity {
	return []Severity{SeverityDown, SeverityCritical, SeverityMajor, SeverityMinor, SeverityClear}
}

// IsKnown reports whether the severity is one of the five recognized values
func (s Severity) IsKnown() bool {
	switch s {
	case SeverityDown, SeverityCritical, SeverityMajor, SeverityMinor, SeverityClear:
		return true
	}
	return false
}

// ParseSeverity matches a token against the known severities, case-insensitively.
// Unknown input is preserved as-is; the dispatch policy treats unrecognized
// values as the lowest routing bucket.
func ParseSeverity(s string) Severity {
	lower := Severity(strings.ToLower(strings.TrimSpace(s)))
	if lower.IsKnown() {
		return lower
	}
	return Severity(s)
}

// GetSeverityEmoji returns the emoji marker used to decorate chat messages
func GetSeverityEmoji(severity Severity) string {
	switch severity {
	case SeverityDown:
		return ":black_circle:"
	case SeverityCritical:
		return ":red_circle:"
	case SeverityMajor:
		return ":large_orange_circle:"
	case SeverityMinor:
		return ":large_yellow_circle:"
	case SeverityClear:
		return ":large_green_circle:"
	default:
		return ":white_circle:"
	}
}

// ========== Monitored systems ==========

// UnknownSystemName is used when an alert references a system that does not exist
const UnknownSystemName = "Unknown System"

// System represents a monitored target
type System struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Address       string    `gorm:"size:255" json:"address"`                        // host, URL, or IP
	SeverityLevel int       `gorm:"default:3" json:"severity_level"`                // business criticality 1 (highest) to 3
	Status        Severity  `gorm:"type:varchar(50);default:'clear'" json:"status"` // mirrors latest alert severity
	ExternalCode  string    `gorm:"size:64" json:"external_code"`
	ChatGroupID   string    `gorm:"size:128" json:"chat_group_id"` // chat group receiving this system's alerts
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DisplayName returns the system name or a placeholder when the system is absent
func (s *System) DisplayName() string {
	if s == nil || s.Name == "" {
		return UnknownSystemName
	}
	return s.Name
}

// ========== Contacts ==========

// Contact is a person who can be notified about incidents.
// Role is a free-text tag matched by substring when resolving recipients
// (e.g. "LD", "BO", "LDTT").
type Contact struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Unit      string    `gorm:"size:255" json:"unit"` // organizational unit
	Role      string    `gorm:"size:255" json:"role"`
	Email     string    `gorm:"size:255" json:"email"`
	Phone     string    `gorm:"size:64" json:"phone"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Groups []ContactGroup `gorm:"many2many:contact_group_members;" json:"groups,omitempty"`
}

// ContactGroup is a named collection of contacts
type ContactGroup struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Contacts []Contact `gorm:"many2many:contact_group_members;" json:"contacts,omitempty"`
}

// ========== Alert rules ==========

// AlertRule is a configured matching rule that classifies incoming events
type AlertRule struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SystemID    *uint     `gorm:"index" json:"system_id"` // nil = applies to all systems
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Expression  string    `gorm:"type:text" json:"expression"` // substring matched against event text
	Severity    Severity  `gorm:"type:varchar(50);default:'minor'" json:"severity"`
	Enabled     bool      `gorm:"default:true" json:"enabled"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	System *System `gorm:"foreignKey:SystemID" json:"system,omitempty"`
}

// ========== Alerts ==========

// Alert is a single reported event against a monitored system
type Alert struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	SystemID       uint       `gorm:"not null;index" json:"system_id"`
	Severity       Severity   `gorm:"type:varchar(50);not null" json:"severity"`
	Message        string     `gorm:"type:text;not null" json:"message"`
	Details        JSONB      `gorm:"type:jsonb" json:"details"`
	Acknowledged   bool       `gorm:"default:false" json:"acknowledged"`
	AcknowledgedBy string     `gorm:"size:255" json:"acknowledged_by"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	Resolved       bool       `gorm:"default:false" json:"resolved"`
	ResolvedBy     string     `gorm:"size:255" json:"resolved_by"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ========== Incidents ==========

// IncidentStatus represents the status of an incident.
// Open, investigating and resolved are the usual states; arbitrary values are
// accepted since operators may set free-form statuses from the dashboard.
type IncidentStatus string

const (
	IncidentStatusOpen          IncidentStatus = "open"
	IncidentStatusInvestigating IncidentStatus = "investigating"
	IncidentStatusResolved      IncidentStatus = "resolved"
)

// Incident is the tracked work item derived 1:1 from an alert
type Incident struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UUID        string         `gorm:"uniqueIndex;size:36;not null" json:"uuid"`
	AlertID     uint           `gorm:"not null;index" json:"alert_id"`
	SystemID    uint           `gorm:"not null;index" json:"system_id"`
	Title       string         `gorm:"size:255;not null" json:"title"` // "{SEVERITY}: {system name}"
	Description string         `gorm:"type:text" json:"description"`   // alert message
	Severity    Severity       `gorm:"type:varchar(50);not null" json:"severity"`
	Status      IncidentStatus `gorm:"type:varchar(50);not null;default:'open'" json:"status"`
	Resolution  string         `gorm:"type:text" json:"resolution"`
	AssignedTo  string         `gorm:"size:255" json:"assigned_to"`
	Advisory    string         `gorm:"type:text" json:"advisory"` // AI triage recommendation, best-effort
	ResolvedAt  *time.Time     `json:"resolved_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	Alert  *Alert  `gorm:"foreignKey:AlertID" json:"alert,omitempty"`
	System *System `gorm:"foreignKey:SystemID" json:"system,omitempty"`
}

// ========== Notifications ==========

// NotificationChannel is a delivery medium
type NotificationChannel string

const (
	ChannelChatwork NotificationChannel = "chatwork"
	ChannelEmail    NotificationChannel = "email"
	ChannelSMS      NotificationChannel = "sms"
)

// NotificationStatus tracks a delivery attempt.
// Transitions only pending→sent or pending→failed, never reversed.
type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
)

// Notification is one delivery attempt on one channel to one recipient
type Notification struct {
	ID         uint                `gorm:"primaryKey" json:"id"`
	IncidentID uint                `gorm:"not null;index" json:"incident_id"`
	Channel    NotificationChannel `gorm:"type:varchar(20);not null" json:"channel"`
	Recipient  string              `gorm:"size:255;not null" json:"recipient"` // email address, phone number, or chat group id
	Message    string              `gorm:"type:text" json:"message"`
	Status     NotificationStatus  `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Error      string              `gorm:"type:text" json:"error"`
	SentAt     *time.Time          `json:"sent_at,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`

	Incident *Incident `gorm:"foreignKey:IncidentID" json:"incident,omitempty"`
}

// ========== On-call scheduling ==========

// Schedule is a dated on-call roster
type Schedule struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      time.Time `gorm:"index;not null" json:"date"`
	Name      string    `gorm:"size:255" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Shifts []Shift `gorm:"foreignKey:ScheduleID" json:"shifts,omitempty"`
}

// Shift is a time window within a schedule
type Shift struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ScheduleID uint      `gorm:"not null;index" json:"schedule_id"`
	Name       string    `gorm:"size:255" json:"name"` // e.g. "day", "night"
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Assignments []ShiftAssignment `gorm:"foreignKey:ShiftID" json:"assignments,omitempty"`
}

// AssignmentRole is a contact's role within a shift
type AssignmentRole string

const (
	AssignmentRolePrimary AssignmentRole = "primary"
	AssignmentRoleBackup  AssignmentRole = "backup"
	AssignmentRoleViewer  AssignmentRole = "viewer"
)

// ShiftAssignment links a contact to a shift with a role and attendance status
type ShiftAssignment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ShiftID   uint           `gorm:"not null;index" json:"shift_id"`
	ContactID uint           `gorm:"not null;index" json:"contact_id"`
	Role      AssignmentRole `gorm:"type:varchar(20);default:'primary'" json:"role"`
	Status    string         `gorm:"size:50;default:'scheduled'" json:"status"` // attendance: scheduled, present, absent
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	Contact *Contact `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
}

// ========== Advisory (LLM) settings ==========

// LLMSettings stores configuration for the AI advisory endpoint
type LLMSettings struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	APIKey    string    `gorm:"type:text" json:"-"`
	Model     string    `gorm:"type:varchar(100);default:'gpt-4o-mini'" json:"model"`
	BaseURL   string    `gorm:"type:text" json:"base_url"` // OpenAI-compatible completions endpoint
	Enabled   bool      `gorm:"default:false" json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsActive returns true if the advisory integration is enabled and configured
func (l *LLMSettings) IsActive() bool {
	return l.Enabled && l.APIKey != ""
}

// ========== Table names ==========

func (System) TableName() string          { return "systems" }
func (Contact) TableName() string         { return "contacts" }
func (ContactGroup) TableName() string    { return "contact_groups" }
func (AlertRule) TableName() string       { return "alert_rules" }
func (Alert) TableName() string           { return "alerts" }
func (Incident) TableName() string        { return "incidents" }
func (Notification) TableName() string    { return "notifications" }
func (Schedule) TableName() string        { return "schedules" }
func (Shift) TableName() string           { return "shifts" }
func (ShiftAssignment) TableName() string { return "shift_assignments" }
func (LLMSettings) TableName() string     { return "llm_settings" }
