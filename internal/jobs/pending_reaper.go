package jobs

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/opswatch/opswatch/internal/database"
)

// DefaultPendingMaxAge is how long a notification may sit in pending before
// the reaper declares the delivery attempt dead
const DefaultPendingMaxAge = 10 * time.Minute

// PendingReaper fails notification records stuck in pending. A record only
// stays pending when a dispatch worker died between creating the record and
// recording the outcome, so anything older than the max age is abandoned.
type PendingReaper struct {
	db     *gorm.DB
	maxAge time.Duration
}

// NewPendingReaper creates a new pending-notification reaper
func NewPendingReaper(db *gorm.DB, maxAge time.Duration) *PendingReaper {
	if maxAge <= 0 {
		maxAge = DefaultPendingMaxAge
	}
	return &PendingReaper{db: db, maxAge: maxAge}
}

// Sweep fails all notifications pending since before the max age and
// returns how many were reaped
func (r *PendingReaper) Sweep() (int64, error) {
	cutoff := time.Now().Add(-r.maxAge)
	return database.FailStalePendingNotifications(r.db, cutoff)
}

// Start begins the periodic sweeping
func (r *PendingReaper) Start(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			reaped, err := r.Sweep()
			if err != nil {
				log.Printf("Pending reaper error: %v", err)
			} else if reaped > 0 {
				log.Printf("Pending reaper: failed %d abandoned notifications", reaped)
			}
		case <-stop:
			log.Println("Pending reaper stopped")
			return
		}
	}
}
