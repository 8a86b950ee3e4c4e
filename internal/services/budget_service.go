package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "grana/internal/errors"
	"grana/internal/models"
)

var oneHundred = decimal.NewFromInt(100)

// budgetService handles the monthly budget planner.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// SetBudget defines the planned amount for one expense category in one
// month. The (user, category, month, year) tuple is the upsert key: an
// existing row is overwritten, never duplicated. The planned amount is
// stored as its absolute value.
func (s *budgetService) SetBudget(userID, categoryID uint, month, year int, planned decimal.Decimal) (*models.MonthlyBudget, error) {
	if !validMonth(month) {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "month must be between 1 and 12")
	}
	if year <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "year must be positive")
	}

	var budget models.MonthlyBudget
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrCategoryNotFound
			}
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if category.Kind != models.CategoryKindExpense {
			return apperrors.ErrNotExpenseCategory
		}

		err := tx.Where("user_id = ? AND category_id = ? AND month = ? AND year = ?",
			userID, categoryID, month, year).First(&budget).Error
		switch {
		case err == nil:
			if err := tx.Model(&budget).Update("planned", planned.Abs()).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrStorage, err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			budget = models.MonthlyBudget{
				UserID:     userID,
				CategoryID: categoryID,
				Month:      month,
				Year:       year,
				Planned:    planned.Abs(),
			}
			if err := tx.Create(&budget).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrStorage, err)
			}
		default:
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

// ListBudgets returns the user's budget lines for one month with their
// realized amounts and utilization, ordered by category name. percent_used
// is zero when the planned amount is zero.
func (s *budgetService) ListBudgets(userID uint, month, year int) ([]BudgetView, error) {
	if !validMonth(month) {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "month must be between 1 and 12")
	}

	var budgets []models.MonthlyBudget
	err := s.db.Preload("Category").
		Joins("JOIN categories ON categories.id = monthly_budgets.category_id").
		Where("monthly_budgets.user_id = ? AND monthly_budgets.month = ? AND monthly_budgets.year = ?", userID, month, year).
		Order("categories.name ASC").
		Find(&budgets).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	views := make([]BudgetView, 0, len(budgets))
	for _, b := range budgets {
		realized, err := s.realizedAmount(userID, b.CategoryID, month, year)
		if err != nil {
			return nil, err
		}
		views = append(views, BudgetView{
			ID:            b.ID,
			CategoryID:    b.CategoryID,
			CategoryName:  b.Category.Name,
			CategoryColor: b.Category.Color,
			Month:         b.Month,
			Year:          b.Year,
			Planned:       b.Planned,
			Realized:      realized,
			PercentUsed:   percentUsed(realized, b.Planned),
			Variance:      b.Planned.Sub(realized),
		})
	}
	return views, nil
}

// realizedAmount sums the ledger for one category and month.
func (s *budgetService) realizedAmount(userID, categoryID uint, month, year int) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(transactions.amount), 0)").
		Where("transactions.user_id = ? AND transactions.category_id = ?", userID, categoryID).
		Where(monthClause(s.db), month).
		Where(yearClause(s.db), year).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return total, nil
}

// DeleteBudget removes one budget line owned by the user.
func (s *budgetService) DeleteBudget(userID, budgetID uint) error {
	var budget models.MonthlyBudget
	if err := s.db.Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.WithMessage(apperrors.ErrNotFound, "budget not found")
		}
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}

	if err := s.db.Delete(&budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}

// Summary aggregates all budget lines of one month. percent_used is zero
// when nothing is planned.
func (s *budgetService) Summary(userID uint, month, year int) (*BudgetSummary, error) {
	views, err := s.ListBudgets(userID, month, year)
	if err != nil {
		return nil, err
	}

	planned := decimal.Zero
	realized := decimal.Zero
	for _, v := range views {
		planned = planned.Add(v.Planned)
		realized = realized.Add(v.Realized)
	}

	return &BudgetSummary{
		TotalPlanned:  planned,
		TotalRealized: realized,
		Variance:      planned.Sub(realized),
		PercentUsed:   percentUsed(realized, planned),
	}, nil
}

// percentUsed returns realized/planned*100, guarding division by zero.
func percentUsed(realized, planned decimal.Decimal) float64 {
	if planned.IsZero() {
		return 0
	}
	pct, _ := realized.Div(planned).Mul(oneHundred).Float64()
	return pct
}
