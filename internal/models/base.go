package models

import "time"

// Base holds the surrogate key and bookkeeping timestamps shared by all tables.
// Rows are deleted for real: the budget upsert and the dependency guards rely
// on deleted rows actually disappearing, so there is no soft-delete column.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
