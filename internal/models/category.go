package models

// CategoryKind classifies a category as money in or money out.
// Display labels belong to the presentation layer; these values are the
// stored representation only.
type CategoryKind string

const (
	CategoryKindExpense CategoryKind = "expense"
	CategoryKindIncome  CategoryKind = "income"
)

// Valid reports whether k is one of the closed set of kinds.
func (k CategoryKind) Valid() bool {
	return k == CategoryKindExpense || k == CategoryKindIncome
}

// Category groups transactions for one user. Names are unique per user and
// the kind is immutable after creation.
type Category struct {
	Base
	UserID uint         `gorm:"not null;index;uniqueIndex:uq_category_user_name" json:"user_id"`
	Name   string       `gorm:"size:100;not null;uniqueIndex:uq_category_user_name" json:"name"`
	Kind   CategoryKind `gorm:"size:10;not null" json:"kind"`
	Color  string       `gorm:"size:7;default:'#3498db'" json:"color"`

	Transactions []Transaction   `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
	Budgets      []MonthlyBudget `gorm:"foreignKey:CategoryID" json:"budgets,omitempty"`
}
