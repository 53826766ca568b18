package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"gorm.io/gorm"

	"github.com/opswatch/opswatch/internal/api"
	"github.com/opswatch/opswatch/internal/database"
	"github.com/opswatch/opswatch/internal/services"
	"github.com/opswatch/opswatch/internal/testhelpers"
)

func setupAPITest(t *testing.T) (*gorm.DB, *http.ServeMux) {
	t.Helper()
	db := testhelpers.SetupTestDB(t)

	alertService := services.NewAlertService(db, nil, nil)
	handler := NewAPIHandler(db, alertService, nil, nil)

	mux := http.NewServeMux()
	handler.SetupRoutes(mux)
	return db, mux
}

func createTestSystem(t *testing.T, db *gorm.DB, name string) *database.System {
	t.Helper()
	system := testhelpers.NewSystemBuilder().WithName(name).Build()
	if err := database.CreateSystem(db, &system); err != nil {
		t.Fatalf("failed to create system: %v", err)
	}
	return &system
}

func TestCreateAndGetSystem(t *testing.T) {
	_, mux := setupAPITest(t)

	var created database.System
	testhelpers.NewHTTPTestContext(t, http.MethodPost, "/api/systems", nil).
		WithJSONBody(map[string]interface{}{
			"name":          "payments-api",
			"address":       "10.1.2.3",
			"chat_group_id": "room-7",
		}).
		Execute(mux).
		AssertStatus(http.StatusCreated).
		DecodeJSON(&created)

	if created.ID == 0 || created.Name != "payments-api" {
		t.Fatalf("created system = %+v", created)
	}
	if created.Status != database.SeverityClear {
		t.Errorf("new system status = %s, want clear", created.Status)
	}
	if created.SeverityLevel != 3 {
		t.Errorf("default severity level = %d, want 3", created.SeverityLevel)
	}

	testhelpers.NewHTTPTestContext(t, http.MethodGet, fmt.Sprintf("/api/systems/%d", created.ID), nil).
		Execute(mux).
		AssertStatus(http.StatusOK).
		AssertBodyContains("payments-api")
}

func TestCreateSystemValidation(t *testing.T) {
	_, mux := setupAPITest(t)

	testhelpers.NewHTTPTestContext(t, http.MethodPost, "/api/systems", nil).
		WithJSONBody(map[string]interface{}{"address": "10.0.0.1"}).
		Execute(mux).
		AssertStatus(http.StatusBadRequest).
		AssertBodyContains("name")
}

func TestGetSystemNotFound(t *testing.T) {
	_, mux := setupAPITest(t)

	testhelpers.NewHTTPTestContext(t, http.MethodGet, "/api/systems/12345", nil).
		Execute(mux).
		AssertStatus(http.StatusNotFound)
}

func TestUpdateSystemPartial(t *testing.T) {
	db, mux := setupAPITest(t)
	system := createTestSystem(t, db, "cache")

	var updated database.System
	testhelpers.NewHTTPTestContext(t, http.MethodPatch, fmt.Sprintf("/api/systems/%d", system.ID), nil).
		WithJSONBody(map[string]interface{}{"address": "10.9.9.9"}).
		Execute(mux).
		AssertStatus(http.StatusOK).
		DecodeJSON(&updated)

	if updated.Address != "10.9.9.9" {
		t.Errorf("address = %q, want updated value", updated.Address)
	}
	if updated.Name != "cache" {
		t.Errorf("name = %q, partial update touched an absent field", updated.Name)
	}
}

func TestDeleteSystem(t *testing.T) {
	db, mux := setupAPITest(t)
	system := createTestSystem(t, db, "legacy")

	testhelpers.NewHTTPTestContext(t, http.MethodDelete, fmt.Sprintf("/api/systems/%d", system.ID), nil).
		Execute(mux).
		AssertStatus(http.StatusNoContent)

	testhelpers.NewHTTPTestContext(t, http.MethodGet, fmt.Sprintf("/api/systems/%d", system.ID), nil).
		Execute(mux).
		AssertStatus(http.StatusNotFound)
}

func TestCreateAlertRunsPipeline(t *testing.T) {
	db, mux := setupAPITest(t)
	system := createTestSystem(t, db, "web-frontend")

	var result struct {
		Alert    database.Alert    `json:"alert"`
		Incident database.Incident `json:"incident"`
	}
	testhelpers.NewHTTPTestContext(t, http.MethodPost, "/api/alerts", nil).
		WithJSONBody(map[string]interface{}{
			"systemId": system.ID,
			"severity": "CRITICAL",
			"message":  "5xx spike",
			"details":  map[string]interface{}{"rate": "90%"},
		}).
		Execute(mux).
		AssertStatus(http.StatusCreated).
		DecodeJSON(&result)

	// Severity is normalized on the way in
	if result.Alert.Severity != database.SeverityCritical {
		t.Errorf("alert severity = %s, want critical", result.Alert.Severity)
	}
	if result.Incident.Title != "CRITICAL: web-frontend" {
		t.Errorf("incident title = %q", result.Incident.Title)
	}

	updated, _ := database.GetSystem(db, system.ID)
	if updated.Status != database.SeverityCritical {
		t.Errorf("system status = %s, want mirrored critical", updated.Status)
	}
}

func TestCreateAlertValidation(t *testing.T) {
	_, mux := setupAPITest(t)

	testhelpers.NewHTTPTestContext(t, http.MethodPost, "/api/alerts", nil).
		WithJSONBody(map[string]interface{}{"systemId": 1}).
		Execute(mux).
		AssertStatus(http.StatusBadRequest)
}

func TestAcknowledgeAlertRequiresIdentity(t *testing.T) {
	db, mux := setupAPITest(t)
	system := createTestSystem(t, db, "queue")

	alertService := services.NewAlertService(db, nil, nil)
	alert, _, err := alertService.Ingest(context.Background(), services.IngestInput{
		SystemID: system.ID,
		Severity: database.SeverityMajor,
		Message:  "backlog",
	})
	if err != nil {
		t.Fatalf("failed to seed alert: %v", err)
	}

	// Missing field fails validation before any state change
	testhelpers.NewHTTPTestContext(t, http.MethodPost, fmt.Sprintf("/api/alerts/%d/acknowledge", alert.ID), nil).
		WithJSONBody(map[string]interface{}{}).
		Execute(mux).
		AssertStatus(http.StatusBadRequest)

	reloaded, _ := database.GetAlert(db, alert.ID)
	if reloaded.Acknowledged {
		t.Error("rejected request still mutated the alert")
	}

	var acked database.Alert
	testhelpers.NewHTTPTestContext(t, http.MethodPost, fmt.Sprintf("/api/alerts/%d/acknowledge", alert.ID), nil).
		WithJSONBody(map[string]interface{}{"acknowledgedBy": "operator-1"}).
		Execute(mux).
		AssertStatus(http.StatusOK).
		DecodeJSON(&acked)

	if !acked.Acknowledged || acked.AcknowledgedBy != "operator-1" {
		t.Errorf("acknowledge not recorded: %+v", acked)
	}
}

func TestListAlertsPaginated(t *testing.T) {
	db, mux := setupAPITest(t)
	system := createTestSystem(t, db, "batch")

	for i := 0; i < 3; i++ {
		alert := testhelpers.NewAlertBuilder().WithSystemID(system.ID).Build()
		if err := database.CreateAlert(db, &alert); err != nil {
			t.Fatalf("failed to seed alert: %v", err)
		}
	}

	var page api.PaginatedResponse
	testhelpers.NewHTTPTestContext(t, http.MethodGet, "/api/alerts?page=1&per_page=2", nil).
		Execute(mux).
		AssertStatus(http.StatusOK).
		DecodeJSON(&page)

	if page.Pagination.Total != 3 {
		t.Errorf("total = %d, want 3", page.Pagination.Total)
	}
	if page.Pagination.TotalPages != 2 {
		t.Errorf("total_pages = %d, want 2", page.Pagination.TotalPages)
	}
}

func TestIncidentAssignAndResolve(t *testing.T) {
	db, mux := setupAPITest(t)
	system := createTestSystem(t, db, "auth")

	alertService := services.NewAlertService(db, nil, nil)
	_, incident, err := alertService.Ingest(context.Background(), services.IngestInput{
		SystemID: system.ID,
		Severity: database.SeverityDown,
		Message:  "login outage",
	})
	if err != nil {
		t.Fatalf("failed to seed incident: %v", err)
	}

	var assigned database.Incident
	testhelpers.NewHTTPTestContext(t, http.MethodPost, fmt.Sprintf("/api/incidents/%d/assign", incident.ID), nil).
		WithJSONBody(map[string]interface{}{"assignedTo": "operator-9"}).
		Execute(mux).
		AssertStatus(http.StatusOK).
		DecodeJSON(&assigned)

	if assigned.AssignedTo != "operator-9" {
		t.Errorf("assigned_to = %q", assigned.AssignedTo)
	}
	if assigned.Status != database.IncidentStatusInvestigating {
		t.Errorf("status = %s, want investigating after assign", assigned.Status)
	}

	var resolved database.Incident
	testhelpers.NewHTTPTestContext(t, http.MethodPost, fmt.Sprintf("/api/incidents/%d/resolve", incident.ID), nil).
		WithJSONBody(map[string]interface{}{"resolution": "failover completed"}).
		Execute(mux).
		AssertStatus(http.StatusOK).
		DecodeJSON(&resolved)

	if resolved.Status != database.IncidentStatusResolved || resolved.Resolution != "failover completed" {
		t.Errorf("resolve not recorded: %+v", resolved)
	}
	if resolved.ResolvedAt == nil {
		t.Error("resolved_at not set")
	}
}

func TestContactGroupMembership(t *testing.T) {
	db, mux := setupAPITest(t)

	contact := testhelpers.NewContactBuilder().WithName("alice").Build()
	if err := database.CreateContact(db, &contact); err != nil {
		t.Fatalf("failed to seed contact: %v", err)
	}

	var group database.ContactGroup
	testhelpers.NewHTTPTestContext(t, http.MethodPost, "/api/groups", nil).
		WithJSONBody(map[string]interface{}{
			"name":        "escalation",
			"contact_ids": []uint{contact.ID},
		}).
		Execute(mux).
		AssertStatus(http.StatusCreated).
		DecodeJSON(&group)

	if len(group.Contacts) != 1 || group.Contacts[0].Name != "alice" {
		t.Errorf("group members = %+v", group.Contacts)
	}

	// Unknown member IDs are rejected
	testhelpers.NewHTTPTestContext(t, http.MethodPost, "/api/groups", nil).
		WithJSONBody(map[string]interface{}{
			"name":        "bad",
			"contact_ids": []uint{999},
		}).
		Execute(mux).
		AssertStatus(http.StatusBadRequest)
}

func TestListNotificationsFilter(t *testing.T) {
	db, mux := setupAPITest(t)
	system := createTestSystem(t, db, "mail")

	alert := testhelpers.NewAlertBuilder().WithSystemID(system.ID).Build()
	if err := database.CreateAlert(db, &alert); err != nil {
		t.Fatalf("failed to seed alert: %v", err)
	}
	incident := testhelpers.NewIncidentBuilder().WithAlertID(alert.ID).WithSystemID(system.ID).Build()
	if err := database.CreateIncident(db, &incident); err != nil {
		t.Fatalf("failed to seed incident: %v", err)
	}
	n := database.Notification{
		IncidentID: incident.ID,
		Channel:    database.ChannelEmail,
		Recipient:  "x@example.com",
	}
	if err := database.CreateNotification(db, &n); err != nil {
		t.Fatalf("failed to seed notification: %v", err)
	}

	var rows []database.Notification
	testhelpers.NewHTTPTestContext(t, http.MethodGet, fmt.Sprintf("/api/notifications?incident_id=%d", incident.ID), nil).
		Execute(mux).
		AssertStatus(http.StatusOK).
		DecodeJSON(&rows)

	if len(rows) != 1 || rows[0].Status != database.NotificationStatusPending {
		t.Errorf("notifications = %+v", rows)
	}

	testhelpers.NewHTTPTestContext(t, http.MethodGet, "/api/notifications?incident_id=abc", nil).
		Execute(mux).
		AssertStatus(http.StatusBadRequest)
}

func TestInvalidPathID(t *testing.T) {
	_, mux := setupAPITest(t)

	testhelpers.NewHTTPTestContext(t, http.MethodGet, "/api/systems/0", nil).
		Execute(mux).
		AssertStatus(http.StatusBadRequest)
}
