package database

import "gorm.io/gorm"

// ListSystems returns all monitored systems ordered by name
func ListSystems(db *gorm.DB) ([]System, error) {
	var systems []System
	if err := db.Order("name asc").Find(&systems).Error; err != nil {
		return nil, err
	}
	return systems, nil
}

// GetSystem retrieves a system by ID
func GetSystem(db *gorm.DB, id uint) (*System, error) {
	var system System
	if err := db.First(&system, id).Error; err != nil {
		return nil, err
	}
	return &system, nil
}

// CreateSystem persists a new system
func CreateSystem(db *gorm.DB, system *System) error {
	return db.Create(system).Error
}

// UpdateSystem applies a partial update to a system
func UpdateSystem(db *gorm.DB, id uint, updates map[string]interface{}) (*System, error) {
	if err := db.Model(&System{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return GetSystem(db, id)
}

// SetSystemStatus mirrors an alert severity onto the system's status field
func SetSystemStatus(db *gorm.DB, id uint, status Severity) error {
	return db.Model(&System{}).Where("id = ?", id).Update("status", status).Error
}

// DeleteSystem removes a system. Alerts referencing it are kept; the
// dependency is soft and not enforced.
func DeleteSystem(db *gorm.DB, id uint) error {
	return db.Delete(&System{}, id).Error
}
