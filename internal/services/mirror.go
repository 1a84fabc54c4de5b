package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anuragch/folio/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrAbsent is returned by Mirror.TryGet when the mirror is reachable but
// holds no row under the key. A valid empty state, not a failure.
var ErrAbsent = errors.New("mirror: key absent")

// ErrMirrorNotConfigured is returned by mirror operations when no endpoint
// was configured.
var ErrMirrorNotConfigured = errors.New("mirror not configured")

// Mirror is the optional network-reachable secondary store for the content
// document. Every call carries a bounded timeout; on timeout the mirror is
// treated as unreachable. Callers must never let a mirror failure become a
// request failure outside the explicit sync path.
type Mirror struct {
	db       *gorm.DB
	timeout  time.Duration
	endpoint string
}

// NewMirror wraps an open mirror handle. A nil db means the mirror is not
// configured; operations then fail fast with ErrMirrorNotConfigured.
func NewMirror(db *gorm.DB, timeout time.Duration, endpoint string) *Mirror {
	return &Mirror{db: db, timeout: timeout, endpoint: endpoint}
}

// Configured reports whether the mirror endpoint was configured at startup
func (m *Mirror) Configured() bool {
	return m != nil && m.db != nil
}

// EndpointHint returns a truncated, non-secret prefix of the mirror endpoint
// for operator display, or "" when unconfigured.
func (m *Mirror) EndpointHint() string {
	if !m.Configured() {
		return ""
	}
	if len(m.endpoint) <= 15 {
		return m.endpoint
	}
	return m.endpoint[:15] + "..."
}

// TryGet reads the document stored under key. ErrAbsent means no row; any
// other error means the mirror was unreachable. Both fall through to the
// next read source, but are logged differently by the caller.
func (m *Mirror) TryGet(ctx context.Context, key string) ([]byte, error) {
	if !m.Configured() {
		return nil, ErrMirrorNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	var row models.ContentRow
	err := m.db.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAbsent
		}
		return nil, fmt.Errorf("mirror unreachable: %w", err)
	}
	return []byte(row.Value.JSON), nil
}

// Upsert inserts or replaces the document stored under key
func (m *Mirror) Upsert(ctx context.Context, key string, value []byte) error {
	if !m.Configured() {
		return ErrMirrorNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	row := models.ContentRow{
		Key:   key,
		Value: models.JSON{JSON: datatypes.JSON(value)},
	}
	err := m.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("mirror upsert failed: %w", err)
	}
	return nil
}

// EnsureSchema creates the content table on the mirror if it can be reached.
// Best effort at startup; a failure here only means a later upsert creates it
// or keeps failing soft.
func (m *Mirror) EnsureSchema(ctx context.Context, migrate func(*gorm.DB) error) error {
	if !m.Configured() {
		return ErrMirrorNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	return migrate(m.db.WithContext(ctx))
}
