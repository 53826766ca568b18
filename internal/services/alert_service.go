package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/opswatch/opswatch/internal/advisor"
	"github.com/opswatch/opswatch/internal/database"
	"github.com/opswatch/opswatch/internal/events"
	"github.com/opswatch/opswatch/internal/notify"
	"gorm.io/gorm"
)

// ErrIdentityRequired is returned when an acknowledge/resolve call is
// missing the caller identity. The handler rejects before any mutation.
var ErrIdentityRequired = errors.New("caller identity is required")

// AlertService owns the alert lifecycle: ingestion into an incident with
// notification fan-out, and the acknowledge/resolve transitions.
type AlertService struct {
	db         *gorm.DB
	advisor    *advisor.Client
	dispatcher *notify.Dispatcher
	events     events.Publisher
}

// NewAlertService creates an alert service with injected collaborators
func NewAlertService(db *gorm.DB, advisorClient *advisor.Client, dispatcher *notify.Dispatcher) *AlertService {
	return &AlertService{
		db:         db,
		advisor:    advisorClient,
		dispatcher: dispatcher,
	}
}

// SetPublisher attaches the dashboard event feed
func (s *AlertService) SetPublisher(p events.Publisher) {
	s.events = p
}

// IngestInput is a validated new-alert payload
type IngestInput struct {
	SystemID uint
	Severity database.Severity
	Message  string
	Details  database.JSONB
}

// Ingest runs the alert pipeline in order: persist the alert, resolve the
// owning system, mirror the system status, create exactly one incident, then
// hand off to the advisory call and notification dispatch (both best-effort
// and decoupled from the caller).
//
// The steps are separate commits on purpose: a failure partway leaves the
// earlier writes in place. There is no rollback or compensation; the
// accepted semantics are at-least-once with possible partial state.
func (s *AlertService) Ingest(ctx context.Context, input IngestInput) (*database.Alert, *database.Incident, error) {
	alert := &database.Alert{
		SystemID: input.SystemID,
		Severity: input.Severity,
		Message:  input.Message,
		Details:  input.Details,
	}
	if err := database.CreateAlert(s.db, alert); err != nil {
		return nil, nil, fmt.Errorf("failed to persist alert: %w", err)
	}
	s.publish(events.EventAlertCreated, alert)

	// The system may be absent; the incident title then falls back to a
	// placeholder name and no status mirror happens.
	system, err := database.GetSystem(s.db, input.SystemID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return alert, nil, fmt.Errorf("failed to look up system: %w", err)
	}

	if system != nil {
		// Mirror the alert severity onto the system unconditionally,
		// whatever the previous status was.
		if err := database.SetSystemStatus(s.db, system.ID, alert.Severity); err != nil {
			log.Printf("AlertService: failed to update system %d status: %v", system.ID, err)
		} else {
			system.Status = alert.Severity
		}
	}

	incident := &database.Incident{
		UUID:        uuid.New().String(),
		AlertID:     alert.ID,
		SystemID:    alert.SystemID,
		Title:       fmt.Sprintf("%s: %s", strings.ToUpper(string(alert.Severity)), system.DisplayName()),
		Description: alert.Message,
		Severity:    alert.Severity,
		Status:      database.IncidentStatusOpen,
	}
	if err := database.CreateIncident(s.db, incident); err != nil {
		return alert, nil, fmt.Errorf("failed to create incident: %w", err)
	}
	s.publish(events.EventIncidentCreated, incident)

	// Advisory is best-effort and must never delay or fail ingestion.
	if s.advisor != nil {
		go s.requestAdvisory(incident.ID, alert)
	}

	if s.dispatcher != nil {
		s.dispatcher.Enqueue(incident, alert, system)
	}

	return alert, incident, nil
}

// requestAdvisory asks the AI service for a triage recommendation and
// stores it on the incident. Runs outside the request lifecycle.
func (s *AlertService) requestAdvisory(incidentID uint, alert *database.Alert) {
	advisory := s.advisor.TriageAlert(context.Background(), alert.Severity, alert.Message, alert.Details)
	if advisory == "" {
		return
	}
	if err := database.SetIncidentAdvisory(s.db, incidentID, advisory); err != nil {
		log.Printf("AlertService: failed to store advisory for incident %d: %v", incidentID, err)
	}
}

// Acknowledge records who acknowledged the alert. It does not touch the
// owning system's status.
func (s *AlertService) Acknowledge(id uint, by string) (*database.Alert, error) {
	if strings.TrimSpace(by) == "" {
		return nil, ErrIdentityRequired
	}
	alert, err := database.AcknowledgeAlert(s.db, id, by)
	if err != nil {
		return nil, err
	}
	s.publish(events.EventAlertAcknowledged, alert)
	return alert, nil
}

// Resolve records who resolved the alert. When the alert severity is
// "clear" the owning system's status is reset to clear as a side effect;
// every other severity leaves the system status untouched even though the
// alert is now resolved. The asymmetry mirrors how the dashboard treats
// clear alerts as all-is-well signals rather than faults.
func (s *AlertService) Resolve(id uint, by string) (*database.Alert, error) {
	if strings.TrimSpace(by) == "" {
		return nil, ErrIdentityRequired
	}
	alert, err := database.ResolveAlert(s.db, id, by)
	if err != nil {
		return nil, err
	}

	if alert.Severity == database.SeverityClear {
		if err := database.SetSystemStatus(s.db, alert.SystemID, database.SeverityClear); err != nil {
			log.Printf("AlertService: failed to clear system %d status: %v", alert.SystemID, err)
		}
	}

	s.publish(events.EventAlertResolved, alert)
	return alert, nil
}

func (s *AlertService) publish(eventType events.EventType, payload interface{}) {
	if s.events != nil {
		s.events.Publish(eventType, payload)
	}
}
