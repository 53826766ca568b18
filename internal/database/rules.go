package database

import "gorm.io/gorm"

// ListAlertRules returns all alert rules
func ListAlertRules(db *gorm.DB) ([]AlertRule, error) {
	var rules []AlertRule
	if err := db.Preload("System").Order("id asc").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// ListEnabledAlertRules returns enabled rules, most specific first
// (system-scoped rules before global ones).
func ListEnabledAlertRules(db *gorm.DB) ([]AlertRule, error) {
	var rules []AlertRule
	err := db.Where("enabled = ?", true).
		Order("system_id IS NULL, id asc").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// GetAlertRule retrieves an alert rule by ID
func GetAlertRule(db *gorm.DB, id uint) (*AlertRule, error) {
	var rule AlertRule
	if err := db.Preload("System").First(&rule, id).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

// CreateAlertRule persists a new alert rule
func CreateAlertRule(db *gorm.DB, rule *AlertRule) error {
	return db.Create(rule).Error
}

// UpdateAlertRule applies a partial update to an alert rule
func UpdateAlertRule(db *gorm.DB, id uint, updates map[string]interface{}) (*AlertRule, error) {
	if err := db.Model(&AlertRule{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return GetAlertRule(db, id)
}

// DeleteAlertRule removes an alert rule
func DeleteAlertRule(db *gorm.DB, id uint) error {
	return db.Delete(&AlertRule{}, id).Error
}
