package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurrenceKind classifies a transaction as a fixed or variable entry.
// It is descriptive only: repeating a transaction over several months is done
// by the caller submitting one record per month.
type RecurrenceKind string

const (
	RecurrenceFixed    RecurrenceKind = "fixed"
	RecurrenceVariable RecurrenceKind = "variable"
)

// Valid reports whether k is one of the closed set of recurrence kinds.
func (k RecurrenceKind) Valid() bool {
	return k == RecurrenceFixed || k == RecurrenceVariable
}

// Transaction is a single ledger entry. Amount is always stored as an
// absolute value; whether it counts as income or expense follows from the
// kind of its category.
type Transaction struct {
	Base
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	CategoryID  uint            `gorm:"not null;index" json:"category_id"`
	Date        time.Time       `gorm:"not null" json:"date"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Description string          `gorm:"size:255" json:"description"`
	Recurrence  RecurrenceKind  `gorm:"size:10;not null;default:'variable'" json:"recurrence"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
