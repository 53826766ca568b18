package database

import (
	"time"

	"gorm.io/gorm"
)

// ListAlertsPage returns one page of alerts, newest first, with the total count
func ListAlertsPage(db *gorm.DB, offset, limit int) ([]Alert, int64, error) {
	var total int64
	if err := db.Model(&Alert{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var alerts []Alert
	err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&alerts).Error
	if err != nil {
		return nil, 0, err
	}
	return alerts, total, nil
}

// ListActiveAlerts returns unresolved alerts, newest first
func ListActiveAlerts(db *gorm.DB) ([]Alert, error) {
	var alerts []Alert
	if err := db.Where("resolved = ?", false).Order("created_at desc").Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// GetAlert retrieves an alert by ID
func GetAlert(db *gorm.DB, id uint) (*Alert, error) {
	var alert Alert
	if err := db.First(&alert, id).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

// CreateAlert persists a new alert
func CreateAlert(db *gorm.DB, alert *Alert) error {
	return db.Create(alert).Error
}

// AcknowledgeAlert records who acknowledged the alert and when.
// Re-acknowledging is not rejected; the fields are simply overwritten.
func AcknowledgeAlert(db *gorm.DB, id uint, by string) (*Alert, error) {
	now := time.Now()
	err := db.Model(&Alert{}).Where("id = ?", id).Updates(map[string]interface{}{
		"acknowledged":    true,
		"acknowledged_by": by,
		"acknowledged_at": now,
	}).Error
	if err != nil {
		return nil, err
	}
	return GetAlert(db, id)
}

// ResolveAlert records who resolved the alert and when
func ResolveAlert(db *gorm.DB, id uint, by string) (*Alert, error) {
	now := time.Now()
	err := db.Model(&Alert{}).Where("id = ?", id).Updates(map[string]interface{}{
		"resolved":    true,
		"resolved_by": by,
		"resolved_at": now,
	}).Error
	if err != nil {
		return nil, err
	}
	return GetAlert(db, id)
}
