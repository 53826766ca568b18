package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database instance
var DB *gorm.DB

// Connect establishes a connection to the PostgreSQL database
func Connect(dsn string, logLevel logger.LogLevel) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established")
	return nil
}

// AutoMigrate runs database migrations
func AutoMigrate() error {
	return AutoMigrateDB(DB)
}

// AutoMigrateDB runs migrations against the given connection.
// Accepts a db parameter so tests can migrate an in-memory SQLite database.
func AutoMigrateDB(db *gorm.DB) error {
	err := db.AutoMigrate(
		&System{},
		&Contact{},
		&ContactGroup{},
		&AlertRule{},
		&Alert{},
		&Incident{},
		&Notification{},
		&Schedule{},
		&Shift{},
		&ShiftAssignment{},
		&LLMSettings{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// InitializeDefaults creates default records if they don't exist
func InitializeDefaults() error {
	// Create default LLM settings if they don't exist. The advisory
	// integration stays disabled until configured.
	var count int64
	DB.Model(&LLMSettings{}).Count(&count)
	if count == 0 {
		defaults := &LLMSettings{Enabled: false}
		if err := DB.Create(defaults).Error; err != nil {
			return fmt.Errorf("failed to create default LLM settings: %w", err)
		}
		log.Println("Created default LLM settings (disabled)")
	}
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// Close closes the database connection
func Close() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetLLMSettings retrieves the advisory settings row
func GetLLMSettings(db *gorm.DB) (*LLMSettings, error) {
	var settings LLMSettings
	if err := db.First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateLLMSettings applies a partial update to the advisory settings row.
// Map updates so that false and empty-string values are written too.
func UpdateLLMSettings(db *gorm.DB, id uint, updates map[string]interface{}) error {
	return db.Model(&LLMSettings{}).Where("id = ?", id).Updates(updates).Error
}
