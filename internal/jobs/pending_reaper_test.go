package jobs

import (
	"testing"
	"time"

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

func seedNotification(t *testing.T, db *gorm.DB, status database.NotificationStatus, age time.Duration) database.Notification {
	t.Helper()
	n := database.Notification{
		IncidentID: 1,
		Channel:    database.ChannelEmail,
		Recipient:  "x@example.com",
		Status:     status,
		CreatedAt:  time.Now().Add(-age),
	}
	if err := db.Create(&n).Error; err != nil {
		t.Fatalf("failed to seed notification: %v", err)
	}
	return n
}

func TestSweepFailsOnlyStalePending(t *testing.T) {
	db := setupTestDB(t)

	stale := seedNotification(t, db, database.NotificationStatusPending, time.Hour)
	fresh := seedNotification(t, db, database.NotificationStatusPending, time.Minute)
	sent := seedNotification(t, db, database.NotificationStatusSent, time.Hour)

	reaper := NewPendingReaper(db, DefaultPendingMaxAge)
	reaped, err := reaper.Sweep()
	if err != nil {
		t.Fatalf("Sweep returned error: %v", err)
	}
	if reaped != 1 {
		t.Errorf("reaped = %d, want 1", reaped)
	}

	var reloadedStale database.Notification
	db.First(&reloadedStale, stale.ID)
	if reloadedStale.Status != database.NotificationStatusFailed {
		t.Errorf("stale status = %s, want failed", reloadedStale.Status)
	}
	if reloadedStale.Error != "delivery attempt abandoned" {
		t.Errorf("stale error = %q", reloadedStale.Error)
	}

	var reloadedFresh database.Notification
	db.First(&reloadedFresh, fresh.ID)
	if reloadedFresh.Status != database.NotificationStatusPending {
		t.Errorf("fresh pending record was reaped: %s", reloadedFresh.Status)
	}

	var reloadedSent database.Notification
	db.First(&reloadedSent, sent.ID)
	if reloadedSent.Status != database.NotificationStatusSent {
		t.Errorf("sent record was touched: %s", reloadedSent.Status)
	}
}

func TestReaperDefaultMaxAge(t *testing.T) {
	db := setupTestDB(t)
	reaper := NewPendingReaper(db, 0)
	if reaper.maxAge != DefaultPendingMaxAge {
		t.Errorf("maxAge = %v, want default %v", reaper.maxAge, DefaultPendingMaxAge)
	}
}

func TestReaperStartStop(t *testing.T) {
	db := setupTestDB(t)
	seedNotification(t, db, database.NotificationStatusPending, time.Hour)

	reaper := NewPendingReaper(db, DefaultPendingMaxAge)
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		reaper.Start(10*time.Millisecond, stop)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for {
		var n database.Notification
		db.Order("id asc").First(&n)
		if n.Status == database.NotificationStatusFailed {
			break
		}
		select {
		case <-deadline:
			t.Fatal("reaper never swept the stale notification")
		case <-time.After(10 * time.Millisecond):
		}
	}

	close(stop)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reaper did not stop")
	}
}
