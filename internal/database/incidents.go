package database

import (
	"time"

	"gorm.io/gorm"
)

// ListIncidentsPage returns one page of incidents, newest first, with the
// total count
func ListIncidentsPage(db *gorm.DB, offset, limit int) ([]Incident, int64, error) {
	var total int64
	if err := db.Model(&Incident{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var incidents []Incident
	err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&incidents).Error
	if err != nil {
		return nil, 0, err
	}
	return incidents, total, nil
}

// GetIncident retrieves an incident by ID
func GetIncident(db *gorm.DB, id uint) (*Incident, error) {
	var incident Incident
	if err := db.First(&incident, id).Error; err != nil {
		return nil, err
	}
	return &incident, nil
}

// CreateIncident persists a new incident
func CreateIncident(db *gorm.DB, incident *Incident) error {
	return db.Create(incident).Error
}

// AssignIncident sets the assignee and moves an open incident to investigating
func AssignIncident(db *gorm.DB, id uint, assignedTo string) (*Incident, error) {
	updates := map[string]interface{}{
		"assigned_to": assignedTo,
	}
	err := db.Model(&Incident{}).
		Where("id = ?", id).
		Updates(updates).Error
	if err != nil {
		return nil, err
	}
	// Only bump status forward from open; a free-form status set by an
	// operator is left alone.
	db.Model(&Incident{}).
		Where("id = ? AND status = ?", id, IncidentStatusOpen).
		Update("status", IncidentStatusInvestigating)
	return GetIncident(db, id)
}

// ResolveIncident records the resolution text and closes the incident
func ResolveIncident(db *gorm.DB, id uint, resolution string) (*Incident, error) {
	now := time.Now()
	err := db.Model(&Incident{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":      IncidentStatusResolved,
		"resolution":  resolution,
		"resolved_at": now,
	}).Error
	if err != nil {
		return nil, err
	}
	return GetIncident(db, id)
}

// SetIncidentAdvisory stores the best-effort AI triage text on an incident
func SetIncidentAdvisory(db *gorm.DB, id uint, advisory string) error {
	return db.Model(&Incident{}).Where("id = ?", id).Update("advisory", advisory).Error
}
