package models

import (
	"time"
)

// ContentKey is the fixed key of the singleton site content row.
const ContentKey = "site_data"

// ContentRow is the single key-value row holding the serialized site content
// document. The same table shape is used in the local store and the mirror.
type ContentRow struct {
	Key       string `gorm:"primaryKey;size:255"`
	Value     JSON   `gorm:"type:json"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for ContentRow
func (ContentRow) TableName() string {
	return "content"
}
