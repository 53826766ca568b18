package notify

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/opswatch/opswatch/internal/database"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	if err := database.AutoMigrateDB(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedContact(t *testing.T, db *gorm.DB, name, role, email, phone string, active bool) database.Contact {
	t.Helper()
	c := database.Contact{
		Name:   name,
		Role:   role,
		Email:  email,
		Phone:  phone,
		Active: active,
	}
	if err := database.CreateContact(db, &c); err != nil {
		t.Fatalf("failed to seed contact %s: %v", name, err)
	}
	return c
}

func namesOf(contacts []database.Contact) []string {
	names := make([]string, len(contacts))
	for i, c := range contacts {
		names[i] = c.Name
	}
	return names
}

func TestEmailRecipientsDownSeverity(t *testing.T) {
	db := setupTestDB(t)
	resolver := NewResolver(db)

	seedContact(t, db, "alice", "LD", "alice@example.com", "", true)
	seedContact(t, db, "bob", "team leader", "bob@example.com", "", true)
	seedContact(t, db, "carol", "BO", "carol@example.com", "", true)
	seedContact(t, db, "dave", "LD", "dave@example.com", "", false) // inactive

	got, err := resolver.EmailRecipients(database.SeverityDown)
	if err != nil {
		t.Fatalf("EmailRecipients returned error: %v", err)
	}

	names := namesOf(got)
	if len(names) != 2 || names[0] != "alice" || names[1] != "bob" {
		t.Errorf("down recipients = %v, want [alice bob]", names)
	}
}

func TestEmailRecipientsMajorSeverity(t *testing.T) {
	db := setupTestDB(t)
	resolver := NewResolver(db)

	seedContact(t, db, "alice", "LD", "alice@example.com", "", true)
	seedContact(t, db, "carol", "BO", "carol@example.com", "", true)
	seedContact(t, db, "erin", "viewer", "erin@example.com", "", true)

	got, err := resolver.EmailRecipients(database.SeverityMajor)
	if err != nil {
		t.Fatalf("EmailRecipients returned error: %v", err)
	}

	names := namesOf(got)
	if len(names) != 2 || names[0] != "alice" || names[1] != "carol" {
		t.Errorf("major recipients = %v, want [alice carol]", names)
	}
}

func TestEmailRecipientsLowSeverityCapped(t *testing.T) {
	db := setupTestDB(t)
	resolver := NewResolver(db)

	seedContact(t, db, "bo1", "BO", "bo1@example.com", "", true)
	seedContact(t, db, "bo2", "BO", "bo2@example.com", "", true)
	seedContact(t, db, "bo3", "BO", "bo3@example.com", "", true)
	seedContact(t, db, "bo4", "BO", "bo4@example.com", "", true)

	got, err := resolver.EmailRecipients(database.SeverityMinor)
	if err != nil {
		t.Fatalf("EmailRecipients returned error: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("minor recipients = %d, want cap of 3", len(got))
	}
	// Cap takes the first matches in id order
	names := namesOf(got)
	if names[0] != "bo1" || names[2] != "bo3" {
		t.Errorf("minor recipients = %v, want first three in id order", names)
	}
}

func TestEmailRecipientsSubstringMatch(t *testing.T) {
	db := setupTestDB(t)
	resolver := NewResolver(db)

	// "LDTT" contains "LD", so an SMS-tier contact also receives
	// down/critical email
	seedContact(t, db, "oncall", "LDTT", "oncall@example.com", "+8400000001", true)
	// lowercase "ld" does not match the case-sensitive "LD" tag
	seedContact(t, db, "lowercase", "ld", "lower@example.com", "", true)

	got, err := resolver.EmailRecipients(database.SeverityCritical)
	if err != nil {
		t.Fatalf("EmailRecipients returned error: %v", err)
	}
	names := namesOf(got)
	if len(names) != 1 || names[0] != "oncall" {
		t.Errorf("critical recipients = %v, want [oncall]", names)
	}
}

func TestSMSRecipientsOnlyForDownAndCritical(t *testing.T) {
	db := setupTestDB(t)
	resolver := NewResolver(db)

	seedContact(t, db, "oncall", "LDTT", "", "+8400000001", true)
	seedContact(t, db, "deputy", "LDP", "", "+8400000002", true)
	seedContact(t, db, "leader", "LD", "", "+8400000003", true)

	for _, sev := range []database.Severity{database.SeverityDown, database.SeverityCritical} {
		got, err := resolver.SMSRecipients(sev)
		if err != nil {
			t.Fatalf("SMSRecipients(%s) returned error: %v", sev, err)
		}
		names := namesOf(got)
		if len(names) != 2 || names[0] != "oncall" || names[1] != "deputy" {
			t.Errorf("SMSRecipients(%s) = %v, want [oncall deputy]", sev, names)
		}
	}

	for _, sev := range []database.Severity{database.SeverityMajor, database.SeverityMinor, database.SeverityClear} {
		got, err := resolver.SMSRecipients(sev)
		if err != nil {
			t.Fatalf("SMSRecipients(%s) returned error: %v", sev, err)
		}
		if len(got) != 0 {
			t.Errorf("SMSRecipients(%s) = %v, want none", sev, namesOf(got))
		}
	}
}

func TestChatTarget(t *testing.T) {
	if got := ChatTarget(nil); got != FallbackChatGroup {
		t.Errorf("ChatTarget(nil) = %q, want %q", got, FallbackChatGroup)
	}
	if got := ChatTarget(&database.System{}); got != FallbackChatGroup {
		t.Errorf("ChatTarget(no group) = %q, want %q", got, FallbackChatGroup)
	}
	if got := ChatTarget(&database.System{ChatGroupID: "12345"}); got != "12345" {
		t.Errorf("ChatTarget = %q, want 12345", got)
	}
}
