package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"playmatch/lobby/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the handoff journal database and runs migrations.
func Connect(dsn string) (*gorm.DB, error) {
	// Configure GORM logger
	customLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             200 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Warn,            // Log level
			IgnoreRecordNotFoundError: true,                   // Ignore ErrRecordNotFound error for logger
			Colorful:                  true,                   // Enable color
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: customLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	log.Println("Database connection established.")

	if err := db.AutoMigrate(&models.HandoffRecord{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	log.Println("Database migrated successfully.")
	return db, nil
}

// Journal records every transition from the lobby into a game session.
type Journal struct {
	db *gorm.DB
}

// NewJournal returns a Journal writing to db.
func NewJournal(db *gorm.DB) *Journal {
	return &Journal{db: db}
}

// Record appends a handoff to the journal.
func (j *Journal) Record(h models.Handoff) error {
	rec := models.HandoffRecord{
		SessionID: h.SessionID,
		Source:    h.Source,
		Opponent:  h.Opponent,
		Mode:      h.Mode,
	}
	if err := j.db.Create(&rec).Error; err != nil {
		return fmt.Errorf("record handoff %s: %w", h.SessionID, err)
	}
	return nil
}

// Query returns the journal ordered newest first, optionally restricted to one source.
func (j *Journal) Query(source models.HandoffSource) *gorm.DB {
	q := j.db.Model(&models.HandoffRecord{}).Order("created_at desc")
	if source != "" {
		q = q.Where("source = ?", source)
	}
	return q
}
