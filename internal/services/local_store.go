package services

import (
	"errors"
	"fmt"

	"github.com/anuragch/folio/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned by LocalStore.Get when the key was never written.
// Expected only before bootstrap has seeded the content row.
var ErrNotFound = errors.New("not found")

// LocalStore is the durable on-machine key-value store for the content
// document. Writes commit synchronously; last write wins.
type LocalStore struct {
	db *gorm.DB
}

// NewLocalStore wraps an open local database handle
func NewLocalStore(db *gorm.DB) *LocalStore {
	return &LocalStore{db: db}
}

// Get reads the document stored under key
func (s *LocalStore) Get(key string) ([]byte, error) {
	var row models.ContentRow
	err := s.db.Where("key = ?", key).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("local store read failed: %w", err)
	}
	return []byte(row.Value.JSON), nil
}

// Put durably replaces the document stored under key, creating it if absent
func (s *LocalStore) Put(key string, value []byte) error {
	row := models.ContentRow{
		Key:   key,
		Value: models.JSON{JSON: datatypes.JSON(value)},
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("local store write failed: %w", err)
	}
	return nil
}

// Count reports the number of stored rows, used by bootstrap to detect first run
func (s *LocalStore) Count() (int64, error) {
	var n int64
	if err := s.db.Model(&models.ContentRow{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
