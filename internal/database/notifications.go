package database

import (
	"time"

	"gorm.io/gorm"
)

// ListNotifications returns notifications, optionally filtered by incident
func ListNotifications(db *gorm.DB, incidentID uint) ([]Notification, error) {
	var notifications []Notification
	query := db.Order("created_at desc")
	if incidentID > 0 {
		query = query.Where("incident_id = ?", incidentID)
	}
	if err := query.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// CreateNotification persists a delivery-attempt record. Status defaults to
// pending; it is updated to sent or failed after the attempt.
func CreateNotification(db *gorm.DB, n *Notification) error {
	if n.Status == "" {
		n.Status = NotificationStatusPending
	}
	return db.Create(n).Error
}

// MarkNotificationSent transitions a pending notification to sent
func MarkNotificationSent(db *gorm.DB, id uint) error {
	now := time.Now()
	return db.Model(&Notification{}).
		Where("id = ? AND status = ?", id, NotificationStatusPending).
		Updates(map[string]interface{}{
			"status":  NotificationStatusSent,
			"sent_at": now,
		}).Error
}

// MarkNotificationFailed transitions a pending notification to failed with
// the captured error text
func MarkNotificationFailed(db *gorm.DB, id uint, errText string) error {
	return db.Model(&Notification{}).
		Where("id = ? AND status = ?", id, NotificationStatusPending).
		Updates(map[string]interface{}{
			"status": NotificationStatusFailed,
			"error":  errText,
		}).Error
}

// FailStalePendingNotifications marks notifications stuck in pending since
// before the cutoff as failed. Used by the reaper job so no record is ever
// left pending after a dispatch worker dies mid-send.
func FailStalePendingNotifications(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Model(&Notification{}).
		Where("status = ? AND created_at < ?", NotificationStatusPending, cutoff).
		Updates(map[string]interface{}{
			"status": NotificationStatusFailed,
			"error":  "delivery attempt abandoned",
		})
	return result.RowsAffected, result.Error
}
