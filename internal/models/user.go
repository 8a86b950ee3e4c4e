package models

// User owns every other record in the system. Deleting a user cascades to
// its categories, transactions and monthly budgets.
type User struct {
	Base
	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:150;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:100;not null" json:"-"`

	Categories   []Category      `gorm:"foreignKey:UserID" json:"categories,omitempty"`
	Transactions []Transaction   `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
	Budgets      []MonthlyBudget `gorm:"foreignKey:UserID" json:"budgets,omitempty"`
}
