package services

import (
	"time"

	"github.com/shopspring/decimal"

	"grana/internal/models"
	"grana/internal/pagination"
)

// UserServicer defines the contract for identity and account lifecycle.
type UserServicer interface {
	Register(name, email, password string) (*models.User, error)
	Authenticate(email, password string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	DeleteUser(id uint) error
}

// CategoryServicer defines the contract for the per-user category registry.
// The kind of a category is fixed at creation; updates touch name and color
// only.
type CategoryServicer interface {
	CreateCategory(userID uint, name string, kind models.CategoryKind, color string) (*models.Category, error)
	ListCategories(userID uint, kind *models.CategoryKind) ([]models.Category, error)
	GetCategoryByID(userID, categoryID uint) (*models.Category, error)
	UpdateCategory(userID, categoryID uint, name, color string) (*models.Category, error)
	DeleteCategory(userID, categoryID uint) error
}

// TransactionFilter holds optional filters for listing ledger entries.
// Filters combine conjunctively; a nil field means no restriction on that
// dimension.
type TransactionFilter struct {
	Month      *int
	Year       *int
	CategoryID *uint
}

// TransactionView is a ledger entry with its category resolved, detached
// from the store and ready for rendering or reporting.
type TransactionView struct {
	ID            uint                  `gorm:"column:id" json:"id"`
	Date          time.Time             `gorm:"column:date" json:"date"`
	Amount        decimal.Decimal       `gorm:"column:amount" json:"amount"`
	Description   string                `gorm:"column:description" json:"description"`
	Recurrence    models.RecurrenceKind `gorm:"column:recurrence" json:"recurrence"`
	CategoryID    uint                  `gorm:"column:category_id" json:"category_id"`
	CategoryName  string                `gorm:"column:category_name" json:"category_name"`
	CategoryKind  models.CategoryKind   `gorm:"column:category_kind" json:"category_kind"`
	CategoryColor string                `gorm:"column:category_color" json:"category_color"`
}

// PeriodTotals are the income, expense and balance sums for one month.
type PeriodTotals struct {
	IncomeTotal  decimal.Decimal `json:"income_total"`
	ExpenseTotal decimal.Decimal `json:"expense_total"`
	Balance      decimal.Decimal `json:"balance"`
}

// TransactionServicer defines the contract for the ledger.
type TransactionServicer interface {
	CreateTransaction(userID, categoryID uint, date time.Time, amount decimal.Decimal, description string, recurrence models.RecurrenceKind) (*models.Transaction, error)
	ListTransactions(userID uint, filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[TransactionView], error)
	ListPeriodTransactions(userID uint, month, year int) ([]TransactionView, error)
	GetTransaction(userID, transactionID uint) (*TransactionView, error)
	UpdateTransaction(userID, transactionID, categoryID uint, date time.Time, amount decimal.Decimal, description string, recurrence models.RecurrenceKind) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID uint) error
	ComputePeriodTotals(userID uint, month, year int) (*PeriodTotals, error)
}

// BudgetView is one monthly budget with its realized amount and derived
// utilization figures. Variance is planned minus realized: positive means
// under budget.
type BudgetView struct {
	ID            uint            `json:"id"`
	CategoryID    uint            `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	CategoryColor string          `json:"category_color"`
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	Planned       decimal.Decimal `json:"planned"`
	Realized      decimal.Decimal `json:"realized"`
	PercentUsed   float64         `json:"percent_used"`
	Variance      decimal.Decimal `json:"variance"`
}

// BudgetSummary aggregates all budget lines of one month.
type BudgetSummary struct {
	TotalPlanned  decimal.Decimal `json:"total_planned"`
	TotalRealized decimal.Decimal `json:"total_realized"`
	Variance      decimal.Decimal `json:"variance"`
	PercentUsed   float64         `json:"percent_used"`
}

// BudgetServicer defines the contract for the monthly budget planner.
type BudgetServicer interface {
	SetBudget(userID, categoryID uint, month, year int, planned decimal.Decimal) (*models.MonthlyBudget, error)
	ListBudgets(userID uint, month, year int) ([]BudgetView, error)
	DeleteBudget(userID, budgetID uint) error
	Summary(userID uint, month, year int) (*BudgetSummary, error)
}

// MonthTotals are the totals of one month inside a year overview.
// BalanceChange is the balance delta against the previous month; it is zero
// for January.
type MonthTotals struct {
	Month         int             `json:"month"`
	IncomeTotal   decimal.Decimal `json:"income_total"`
	ExpenseTotal  decimal.Decimal `json:"expense_total"`
	Balance       decimal.Decimal `json:"balance"`
	BalanceChange decimal.Decimal `json:"balance_change"`
}

// YearOverview is the twelve-month rollup for one calendar year.
// BestMonth and WorstMonth are month numbers picked by balance; ties keep
// the earliest month.
type YearOverview struct {
	Year       int             `json:"year"`
	Months     []MonthTotals   `json:"months"`
	YTDIncome  decimal.Decimal `json:"ytd_income"`
	YTDExpense decimal.Decimal `json:"ytd_expense"`
	YTDBalance decimal.Decimal `json:"ytd_balance"`
	BestMonth  int             `json:"best_month"`
	WorstMonth int             `json:"worst_month"`
}

// MonthReport is the payload handed to a document generator for one month:
// plain records only, no live store handles. Layout, partitioning by kind
// and any re-sorting belong to the consumer.
type MonthReport struct {
	UserName     string            `json:"user_name"`
	Month        int               `json:"month"`
	Year         int               `json:"year"`
	Totals       PeriodTotals      `json:"totals"`
	Transactions []TransactionView `json:"transactions"`
	Budgets      []BudgetView      `json:"budgets"`
}

// ReportServicer composes ledger and budget outputs into report-ready
// aggregates. It performs no writes.
type ReportServicer interface {
	MonthReport(userID uint, month, year int) (*MonthReport, error)
	YearOverview(userID uint, year int) (*YearOverview, error)
}
