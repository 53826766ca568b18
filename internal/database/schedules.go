package database

import (
	"time"

	"gorm.io/gorm"
)

// ListSchedules returns all schedules with shifts and assignments
func ListSchedules(db *gorm.DB) ([]Schedule, error) {
	var schedules []Schedule
	err := db.Preload("Shifts.Assignments.Contact").Preload("Shifts").
		Order("date desc").Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

// ListSchedulesByDate returns schedules falling on the given calendar day
func ListSchedulesByDate(db *gorm.DB, day time.Time) ([]Schedule, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var schedules []Schedule
	err := db.Preload("Shifts.Assignments.Contact").Preload("Shifts").
		Where("date >= ? AND date < ?", start, end).
		Order("date asc").Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

// GetSchedule retrieves a schedule by ID with shifts and assignments
func GetSchedule(db *gorm.DB, id uint) (*Schedule, error) {
	var schedule Schedule
	err := db.Preload("Shifts.Assignments.Contact").Preload("Shifts").
		First(&schedule, id).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// CreateSchedule persists a schedule together with nested shifts and assignments
func CreateSchedule(db *gorm.DB, schedule *Schedule) error {
	return db.Create(schedule).Error
}

// DeleteSchedule removes a schedule with its shifts and assignments
func DeleteSchedule(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var shiftIDs []uint
		if err := tx.Model(&Shift{}).Where("schedule_id = ?", id).Pluck("id", &shiftIDs).Error; err != nil {
			return err
		}
		if len(shiftIDs) > 0 {
			if err := tx.Where("shift_id IN ?", shiftIDs).Delete(&ShiftAssignment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("schedule_id = ?", id).Delete(&Shift{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&Schedule{}, id).Error
	})
}
