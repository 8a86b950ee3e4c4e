package models

import "github.com/shopspring/decimal"

// MonthlyBudget is the planned amount for one expense category in one
// calendar month. The unique index makes the (user, category, month, year)
// tuple the upsert key: defining a budget twice overwrites the planned
// amount instead of adding a row.
type MonthlyBudget struct {
	Base
	UserID     uint            `gorm:"not null;uniqueIndex:uq_budget_user_category_period" json:"user_id"`
	CategoryID uint            `gorm:"not null;uniqueIndex:uq_budget_user_category_period" json:"category_id"`
	Month      int             `gorm:"not null;uniqueIndex:uq_budget_user_category_period" json:"month"`
	Year       int             `gorm:"not null;uniqueIndex:uq_budget_user_category_period" json:"year"`
	Planned    decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"planned"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
