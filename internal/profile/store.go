package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ImporterProfile holds the saved importer identity details that summary
// verification compares against.
type ImporterProfile struct {
	ImporterName string `json:"importerName"`
	IECNumber    string `json:"iecNumber"`
	GSTIN        string `json:"gstin"`
	ADCode       string `json:"adCode"`
}

// profileRecord is the single-row persisted form of the profile.
type profileRecord struct {
	ID           uint      `gorm:"primaryKey"`
	ImporterName string    `gorm:"type:varchar(255)"`
	IECNumber    string    `gorm:"type:varchar(50);column:iec_number"`
	GSTIN        string    `gorm:"type:varchar(50)"`
	ADCode       string    `gorm:"type:varchar(50);column:ad_code"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for profileRecord
func (profileRecord) TableName() string {
	return "importer_profiles"
}

const profileRowID = 1

// Store handles database operations for the importer profile.
type Store struct {
	db *gorm.DB
}

// NewStore creates a profile store and migrates its schema.
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&profileRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate profile schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Load returns the saved profile, or (nil, nil) when none was ever saved.
// Absence is an expected state, not an error; summary verification
// reports not_available for it.
func (s *Store) Load(ctx context.Context) (*ImporterProfile, error) {
	var record profileRecord
	err := s.db.WithContext(ctx).First(&record, "id = ?", profileRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load importer profile: %w", err)
	}
	return &ImporterProfile{
		ImporterName: record.ImporterName,
		IECNumber:    record.IECNumber,
		GSTIN:        record.GSTIN,
		ADCode:       record.ADCode,
	}, nil
}

// Save upserts the profile.
func (s *Store) Save(ctx context.Context, p *ImporterProfile) error {
	if p == nil {
		return fmt.Errorf("profile cannot be nil")
	}
	record := profileRecord{
		ID:           profileRowID,
		ImporterName: p.ImporterName,
		IECNumber:    p.IECNumber,
		GSTIN:        p.GSTIN,
		ADCode:       p.ADCode,
	}
	if err := s.db.WithContext(ctx).Save(&record).Error; err != nil {
		return fmt.Errorf("failed to save importer profile: %w", err)
	}
	return nil
}
