package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/opencustoms/boe-copilot/internal/verification/model"
)

// EntryRecord is the persisted form of one catalog entry. Position keeps
// the catalog's order stable, since lookup resolves to the first textual
// match. Names are deliberately not unique; duplicates are tolerated.
type EntryRecord struct {
	ID                uint            `gorm:"primaryKey;autoIncrement"`
	Position          int             `gorm:"index;not null"`
	Name              string          `gorm:"type:varchar(255);not null"`
	HSCode            string          `gorm:"type:varchar(50);column:hs_code"`
	UnitPriceAmount   decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	UnitPriceCurrency string          `gorm:"type:varchar(8);not null"`
	CreatedAt         time.Time       `gorm:"autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime"`
}

// TableName returns the table name for EntryRecord
func (EntryRecord) TableName() string {
	return "catalog_entries"
}

func (r EntryRecord) toEntry() model.CatalogEntry {
	return model.CatalogEntry{
		Name:   r.Name,
		HSCode: r.HSCode,
		UnitPrice: model.MonetaryValue{
			Amount:   r.UnitPriceAmount,
			Currency: r.UnitPriceCurrency,
		},
	}
}

// Store handles database operations for the product catalog.
type Store struct {
	db *gorm.DB
}

// NewStore creates a catalog store and migrates its schema.
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&EntryRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate catalog schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Load returns every catalog entry in catalog order.
func (s *Store) Load(ctx context.Context) ([]model.CatalogEntry, error) {
	var records []EntryRecord
	if err := s.db.WithContext(ctx).Order("position ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	entries := make([]model.CatalogEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, r.toEntry())
	}
	return entries, nil
}

// Replace swaps the whole catalog for the given entries inside one
// transaction. Either every entry is saved or none is.
func (s *Store) Replace(ctx context.Context, entries []model.CatalogEntry) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&EntryRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear catalog: %w", err)
		}
		if len(entries) == 0 {
			return nil
		}
		records := make([]EntryRecord, 0, len(entries))
		for i, e := range entries {
			records = append(records, EntryRecord{
				Position:          i,
				Name:              e.Name,
				HSCode:            e.HSCode,
				UnitPriceAmount:   e.UnitPrice.Amount,
				UnitPriceCurrency: e.UnitPrice.Currency,
			})
		}
		if err := tx.Create(&records).Error; err != nil {
			return fmt.Errorf("failed to save catalog: %w", err)
		}
		return nil
	})
}

// Append adds one entry at the end of the catalog.
func (s *Store) Append(ctx context.Context, entry model.CatalogEntry) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPosition *int
		if err := tx.Model(&EntryRecord{}).Select("MAX(position)").Scan(&maxPosition).Error; err != nil {
			return fmt.Errorf("failed to determine catalog position: %w", err)
		}
		position := 0
		if maxPosition != nil {
			position = *maxPosition + 1
		}
		record := EntryRecord{
			Position:          position,
			Name:              entry.Name,
			HSCode:            entry.HSCode,
			UnitPriceAmount:   entry.UnitPrice.Amount,
			UnitPriceCurrency: entry.UnitPrice.Currency,
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to append catalog entry: %w", err)
		}
		return nil
	})
}
