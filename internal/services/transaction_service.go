package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "grana/internal/errors"
	"grana/internal/models"
	"grana/internal/pagination"
)

// transactionService handles the ledger.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// ownedCategory loads a category and verifies it belongs to the user.
// A category owned by someone else is indistinguishable from a missing one.
func (s *transactionService) ownedCategory(db *gorm.DB, userID, categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &category, nil
}

// CreateTransaction records a ledger entry. The amount is stored as its
// absolute value regardless of the sign supplied; a zero date defaults to
// today.
func (s *transactionService) CreateTransaction(
	userID, categoryID uint,
	date time.Time,
	amount decimal.Decimal,
	description string,
	recurrence models.RecurrenceKind,
) (*models.Transaction, error) {
	if strings.TrimSpace(description) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "description is required")
	}
	if amount.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "amount must be non-zero")
	}
	if !recurrence.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "recurrence must be fixed or variable")
	}
	if date.IsZero() {
		date = time.Now()
	}

	var transaction *models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.ownedCategory(tx, userID, categoryID); err != nil {
			return err
		}
		transaction = &models.Transaction{
			UserID:      userID,
			CategoryID:  categoryID,
			Date:        date,
			Amount:      amount.Abs(),
			Description: description,
			Recurrence:  recurrence,
		}
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// viewQuery builds the base query joining ledger entries to their categories,
// projected into TransactionView columns.
func (s *transactionService) viewQuery(userID uint) *gorm.DB {
	return s.db.Model(&models.Transaction{}).
		Select(`transactions.id,
			transactions.date,
			transactions.amount,
			transactions.description,
			transactions.recurrence,
			transactions.category_id,
			categories.name AS category_name,
			categories.kind AS category_kind,
			categories.color AS category_color`).
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ?", userID)
}

// ListTransactions returns one page of the user's ledger, newest first.
func (s *transactionService) ListTransactions(userID uint, filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[TransactionView], error) {
	base := s.viewQuery(userID)
	if filter.Month != nil {
		base = base.Where(monthClause(s.db), *filter.Month)
	}
	if filter.Year != nil {
		base = base.Where(yearClause(s.db), *filter.Year)
	}
	if filter.CategoryID != nil {
		base = base.Where("transactions.category_id = ?", *filter.CategoryID)
	}

	var totalItems int64
	if err := base.Session(&gorm.Session{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	var views []TransactionView
	if err := base.Order("transactions.date DESC, transactions.id DESC").
		Scopes(pagination.Scope(page)).
		Scan(&views).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	result := pagination.NewPageResponse(views, page, totalItems)
	return &result, nil
}

// ListPeriodTransactions returns every ledger entry of one month, newest
// first, without pagination. Report assembly uses this.
func (s *transactionService) ListPeriodTransactions(userID uint, month, year int) ([]TransactionView, error) {
	if !validMonth(month) {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "month must be between 1 and 12")
	}

	views := make([]TransactionView, 0)
	err := s.viewQuery(userID).
		Where(monthClause(s.db), month).
		Where(yearClause(s.db), year).
		Order("transactions.date DESC, transactions.id DESC").
		Scan(&views).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return views, nil
}

// GetTransaction retrieves one ledger entry owned by the user.
func (s *transactionService) GetTransaction(userID, transactionID uint) (*TransactionView, error) {
	var view TransactionView
	result := s.viewQuery(userID).Where("transactions.id = ?", transactionID).Scan(&view)
	if result.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrNotFound, "transaction not found")
	}
	return &view, nil
}

// UpdateTransaction rewrites a ledger entry, re-validating that the target
// category belongs to the user.
func (s *transactionService) UpdateTransaction(
	userID, transactionID, categoryID uint,
	date time.Time,
	amount decimal.Decimal,
	description string,
	recurrence models.RecurrenceKind,
) (*models.Transaction, error) {
	if strings.TrimSpace(description) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "description is required")
	}
	if amount.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "amount must be non-zero")
	}
	if !recurrence.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "recurrence must be fixed or variable")
	}

	var transaction models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.WithMessage(apperrors.ErrNotFound, "transaction not found")
			}
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if _, err := s.ownedCategory(tx, userID, categoryID); err != nil {
			return err
		}
		updates := map[string]interface{}{
			"category_id": categoryID,
			"date":        date,
			"amount":      amount.Abs(),
			"description": description,
			"recurrence":  recurrence,
		}
		if err := tx.Model(&transaction).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

// DeleteTransaction removes a ledger entry owned by the user.
func (s *transactionService) DeleteTransaction(userID, transactionID uint) error {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.WithMessage(apperrors.ErrNotFound, "transaction not found")
		}
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}

	if err := s.db.Delete(&transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}

// ComputePeriodTotals sums the user's ledger for one month, split by
// category kind. A month without transactions yields zero totals.
func (s *transactionService) ComputePeriodTotals(userID uint, month, year int) (*PeriodTotals, error) {
	if !validMonth(month) {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "month must be between 1 and 12")
	}

	income, err := s.sumForKind(userID, models.CategoryKindIncome, month, year)
	if err != nil {
		return nil, err
	}
	expense, err := s.sumForKind(userID, models.CategoryKindExpense, month, year)
	if err != nil {
		return nil, err
	}

	return &PeriodTotals{
		IncomeTotal:  income,
		ExpenseTotal: expense,
		Balance:      income.Sub(expense),
	}, nil
}

func (s *transactionService) sumForKind(userID uint, kind models.CategoryKind, month, year int) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(transactions.amount), 0)").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ? AND categories.kind = ?", userID, kind).
		Where(monthClause(s.db), month).
		Where(yearClause(s.db), year).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return total, nil
}
