package api

import "time"

// ========== Systems ==========

// CreateSystemRequest is the payload for POST /api/systems
type CreateSystemRequest struct {
	Name          string `json:"name" validate:"required,max=255"`
	Address       string `json:"address" validate:"max=255"`
	SeverityLevel int    `json:"severity_level" validate:"omitempty,min=1,max=3"`
	ExternalCode  string `json:"external_code" validate:"max=64"`
	ChatGroupID   string `json:"chat_group_id" validate:"max=128"`
}

// UpdateSystemRequest is the payload for PATCH /api/systems/{id}.
// Pointer fields distinguish "not sent" from zero values.
type UpdateSystemRequest struct {
	Name          *string `json:"name" validate:"omitempty,max=255"`
	Address       *string `json:"address" validate:"omitempty,max=255"`
	SeverityLevel *int    `json:"severity_level" validate:"omitempty,min=1,max=3"`
	Status        *string `json:"status"`
	ExternalCode  *string `json:"external_code" validate:"omitempty,max=64"`
	ChatGroupID   *string `json:"chat_group_id" validate:"omitempty,max=128"`
}

// ========== Contacts ==========

// CreateContactRequest is the payload for POST /api/contacts
type CreateContactRequest struct {
	Name   string `json:"name" validate:"required,max=255"`
	Unit   string `json:"unit" validate:"max=255"`
	Role   string `json:"role" validate:"max=255"`
	Email  string `json:"email" validate:"omitempty,email"`
	Phone  string `json:"phone" validate:"max=64"`
	Active *bool  `json:"active"`
}

// UpdateContactRequest is the payload for PATCH /api/contacts/{id}
type UpdateContactRequest struct {
	Name   *string `json:"name" validate:"omitempty,max=255"`
	Unit   *string `json:"unit" validate:"omitempty,max=255"`
	Role   *string `json:"role" validate:"omitempty,max=255"`
	Email  *string `json:"email" validate:"omitempty,email"`
	Phone  *string `json:"phone" validate:"omitempty,max=64"`
	Active *bool   `json:"active"`
}

// ========== Contact groups ==========

// CreateGroupRequest is the payload for POST /api/groups
type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	ContactIDs  []uint `json:"contact_ids"`
}

// UpdateGroupRequest is the payload for PATCH /api/groups/{id}
type UpdateGroupRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	ContactIDs  *[]uint `json:"contact_ids"`
}

// ========== Alert rules ==========

// CreateRuleRequest is the payload for POST /api/rules
type CreateRuleRequest struct {
	SystemID    *uint  `json:"system_id"`
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	Expression  string `json:"expression"`
	Severity    string `json:"severity" validate:"omitempty,oneof=down critical major minor clear"`
	Enabled     *bool  `json:"enabled"`
}

// UpdateRuleRequest is the payload for PATCH /api/rules/{id}
type UpdateRuleRequest struct {
	SystemID    *uint   `json:"system_id"`
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	Expression  *string `json:"expression"`
	Severity    *string `json:"severity" validate:"omitempty,oneof=down critical major minor clear"`
	Enabled     *bool   `json:"enabled"`
}

// ========== Alerts ==========

// CreateAlertRequest is the payload for POST /api/alerts
type CreateAlertRequest struct {
	SystemID uint                   `json:"systemId" validate:"required"`
	Severity string                 `json:"severity" validate:"required"`
	Message  string                 `json:"message" validate:"required"`
	Details  map[string]interface{} `json:"details"`
}

// AcknowledgeAlertRequest is the payload for POST /api/alerts/{id}/acknowledge
type AcknowledgeAlertRequest struct {
	AcknowledgedBy string `json:"acknowledgedBy" validate:"required"`
}

// ResolveAlertRequest is the payload for POST /api/alerts/{id}/resolve
type ResolveAlertRequest struct {
	ResolvedBy string `json:"resolvedBy" validate:"required"`
}

// ========== Incidents ==========

// AssignIncidentRequest is the payload for POST /api/incidents/{id}/assign
type AssignIncidentRequest struct {
	AssignedTo string `json:"assignedTo" validate:"required"`
}

// ResolveIncidentRequest is the payload for POST /api/incidents/{id}/resolve
type ResolveIncidentRequest struct {
	Resolution string `json:"resolution" validate:"required"`
}

// ========== Schedules ==========

// ScheduleAssignmentRequest is one contact assignment within a shift
type ScheduleAssignmentRequest struct {
	ContactID uint   `json:"contact_id" validate:"required"`
	Role      string `json:"role" validate:"omitempty,oneof=primary backup viewer"`
	Status    string `json:"status" validate:"max=50"`
}

// ScheduleShiftRequest is one time window within a schedule
type ScheduleShiftRequest struct {
	Name        string                      `json:"name" validate:"max=255"`
	StartTime   time.Time                   `json:"start_time" validate:"required"`
	EndTime     time.Time                   `json:"end_time" validate:"required"`
	Assignments []ScheduleAssignmentRequest `json:"assignments" validate:"dive"`
}

// CreateScheduleRequest is the payload for POST /api/schedules
type CreateScheduleRequest struct {
	Date   time.Time              `json:"date" validate:"required"`
	Name   string                 `json:"name" validate:"max=255"`
	Shifts []ScheduleShiftRequest `json:"shifts" validate:"dive"`
}

// ========== Log analysis ==========

// AnalyzeLogsRequest is the payload for POST /api/logs/analyze
type AnalyzeLogsRequest struct {
	SystemID   uint   `json:"systemId" validate:"required"`
	LogContent string `json:"logContent" validate:"required"`
}

// ========== Advisory settings ==========

// UpdateLLMSettingsRequest is the payload for PUT /api/settings/llm.
// All fields are optional; omitted fields are left unchanged.
type UpdateLLMSettingsRequest struct {
	APIKey  *string `json:"api_key"`
	Model   *string `json:"model" validate:"omitempty,max=100"`
	BaseURL *string `json:"base_url"`
	Enabled *bool   `json:"enabled"`
}
