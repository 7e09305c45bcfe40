// Package store persists PLC configurations in SQLite. The flat
// address-mapping JSON is the system of record; normalized views are
// recomputed from it on every read.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/plc-dashboard/backend/internal/models"
	"github.com/plc-dashboard/backend/internal/normalize"
)

// ErrNotFound is returned when no PLC record matches the given id.
var ErrNotFound = errors.New("plc not found")

// PLCRecord is the database row for one PLC configuration. Mappings holds
// the raw address_mappings JSON in its upload shape.
type PLCRecord struct {
	ID          string `gorm:"primaryKey"`
	PLCName     string
	PLCNo       int
	PLCIP       string
	OPCUAURL    string
	Status      string
	IsConnected bool
	LastChecked time.Time
	CreatedAt   time.Time
	Mappings    []byte `gorm:"type:text"`
}

// TableName keeps the table name stable regardless of pluralization rules.
func (PLCRecord) TableName() string { return "plc_configs" }

// Store wraps the SQLite connection and the normalizer used to rebuild the
// UI-facing view from stored rows. Reads never synthesize fallback bits;
// that convenience belongs to the upload path only, and anything it
// synthesized is already persisted as real bit metadata.
type Store struct {
	db   *gorm.DB
	norm *normalize.Normalizer
}

// Open opens (or creates) the SQLite database at path and migrates the
// schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.AutoMigrate(&PLCRecord{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	return &Store{
		db:   db,
		norm: normalize.New(normalize.Options{SynthesizeMissingBits: false}),
	}, nil
}

// Close closes the underlying SQL connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save denormalizes the PLC back into its flat shape and upserts the row.
func (s *Store) Save(ctx context.Context, plc models.NormalizedPLC) error {
	raw := normalize.Denormalize(plc)
	mappings, err := json.Marshal(raw.AddressMappings)
	if err != nil {
		return fmt.Errorf("encoding address mappings: %w", err)
	}

	rec := PLCRecord{
		ID:          plc.ID,
		PLCName:     raw.PLCName,
		PLCNo:       raw.PLCNo,
		PLCIP:       raw.PLCIP,
		OPCUAURL:    raw.OPCUAURL,
		Status:      string(plc.Status),
		IsConnected: plc.IsConnected,
		LastChecked: plc.LastChecked,
		CreatedAt:   plc.CreatedAt,
		Mappings:    mappings,
	}
	return s.db.WithContext(ctx).Save(&rec).Error
}

// Get loads one PLC and renormalizes its stored mappings.
func (s *Store) Get(ctx context.Context, id string) (models.NormalizedPLC, error) {
	var rec PLCRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NormalizedPLC{}, ErrNotFound
	}
	if err != nil {
		return models.NormalizedPLC{}, err
	}
	return s.toNormalized(rec)
}

// List returns every stored PLC, renormalized, ordered by creation time.
func (s *Store) List(ctx context.Context) ([]models.NormalizedPLC, error) {
	var recs []PLCRecord
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&recs).Error; err != nil {
		return nil, err
	}

	plcs := make([]models.NormalizedPLC, 0, len(recs))
	for _, rec := range recs {
		plc, err := s.toNormalized(rec)
		if err != nil {
			return nil, err
		}
		plcs = append(plcs, plc)
	}
	return plcs, nil
}

// Delete removes a PLC record.
func (s *Store) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&PLCRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus updates the connection fields without touching the mappings.
// The simulator uses this to mark PLCs as seen.
func (s *Store) UpdateStatus(ctx context.Context, id string, status models.PLCStatus, connected bool, lastChecked time.Time) error {
	res := s.db.WithContext(ctx).Model(&PLCRecord{}).Where("id = ?", id).Updates(map[string]any{
		"status":       string(status),
		"is_connected": connected,
		"last_checked": lastChecked,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// toNormalized rebuilds the UI-facing view from a stored row, keeping the
// row's identity and connection state over the normalizer's upload defaults.
func (s *Store) toNormalized(rec PLCRecord) (models.NormalizedPLC, error) {
	var mappings []models.AddressMapping
	if len(rec.Mappings) > 0 {
		if err := json.Unmarshal(rec.Mappings, &mappings); err != nil {
			return models.NormalizedPLC{}, fmt.Errorf("decoding address mappings for %s: %w", rec.ID, err)
		}
	}

	raw := models.RawPLCConfig{
		PLCName:         rec.PLCName,
		PLCNo:           rec.PLCNo,
		PLCIP:           rec.PLCIP,
		OPCUAURL:        rec.OPCUAURL,
		AddressMappings: mappings,
	}

	plc := s.norm.NormalizePLC(raw, rec.ID, rec.LastChecked)
	plc.Status = models.PLCStatus(rec.Status)
	plc.IsConnected = rec.IsConnected
	plc.LastChecked = rec.LastChecked
	plc.CreatedAt = rec.CreatedAt
	return plc, nil
}
