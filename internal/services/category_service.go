package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "grana/internal/errors"
	"grana/internal/models"
)

const defaultCategoryColor = "#3498db"

// categoryService handles the per-user category registry.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category. Names are unique per user with a
// case-sensitive match, independent of kind.
func (s *categoryService) CreateCategory(userID uint, name string, kind models.CategoryKind, color string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "category name is required")
	}
	if !kind.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "category kind must be expense or income")
	}
	if color == "" {
		color = defaultCategoryColor
	}

	category := &models.Category{
		UserID: userID,
		Name:   name,
		Kind:   kind,
		Color:  color,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Category{}).
			Where("user_id = ? AND name = ?", userID, name).
			Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if count > 0 {
			return apperrors.ErrDuplicateName
		}
		if err := tx.Create(category).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return category, nil
}

// ListCategories returns the user's categories ordered by name, optionally
// restricted to one kind.
func (s *categoryService) ListCategories(userID uint, kind *models.CategoryKind) ([]models.Category, error) {
	q := s.db.Where("user_id = ?", userID)
	if kind != nil {
		q = q.Where("kind = ?", *kind)
	}

	categories := make([]models.Category, 0)
	if err := q.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category owned by the user.
func (s *categoryService) GetCategoryByID(userID, categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrNotFound, "category not found")
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &category, nil
}

// UpdateCategory renames and recolors a category. The kind cannot change.
func (s *categoryService) UpdateCategory(userID, categoryID uint, name, color string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "category name is required")
	}

	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Category{}).
			Where("user_id = ? AND name = ? AND id <> ?", userID, name, categoryID).
			Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if count > 0 {
			return apperrors.ErrDuplicateName
		}

		updates := map[string]interface{}{"name": name}
		if color != "" {
			updates["color"] = color
		}
		if err := tx.Model(category).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory removes a category. It refuses when transactions or monthly
// budgets still reference it; budgets count as dependents too so a delete
// never orphans planned amounts.
func (s *categoryService) DeleteCategory(userID, categoryID uint) error {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var txCount int64
		if err := tx.Model(&models.Transaction{}).Where("category_id = ?", categoryID).Count(&txCount).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if txCount > 0 {
			return apperrors.ErrHasDependents
		}

		var budgetCount int64
		if err := tx.Model(&models.MonthlyBudget{}).Where("category_id = ?", categoryID).Count(&budgetCount).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if budgetCount > 0 {
			return apperrors.ErrHasDependents
		}

		if err := tx.Delete(category).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		return nil
	})
}
