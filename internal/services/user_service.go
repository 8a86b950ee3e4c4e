package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "grana/internal/errors"
	"grana/internal/models"
)

// starterCategories is the fixed set seeded for every new user.
var starterCategories = []models.Category{
	{Name: "Housing", Kind: models.CategoryKindExpense, Color: "#e74c3c"},
	{Name: "Food", Kind: models.CategoryKindExpense, Color: "#e67e22"},
	{Name: "Transport", Kind: models.CategoryKindExpense, Color: "#f39c12"},
	{Name: "Health", Kind: models.CategoryKindExpense, Color: "#16a085"},
	{Name: "Education", Kind: models.CategoryKindExpense, Color: "#2980b9"},
	{Name: "Leisure", Kind: models.CategoryKindExpense, Color: "#8e44ad"},
	{Name: "Other", Kind: models.CategoryKindExpense, Color: "#95a5a6"},
	{Name: "Salary", Kind: models.CategoryKindIncome, Color: "#27ae60"},
	{Name: "Investments", Kind: models.CategoryKindIncome, Color: "#2ecc71"},
	{Name: "Other Income", Kind: models.CategoryKindIncome, Color: "#1abc9c"},
}

// userService handles identity and account lifecycle.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// Register creates a new user and seeds the starter categories in the same
// transaction: either both persist or neither does. Emails are stored and
// matched exactly as supplied.
func (s *userService) Register(name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" || email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "name, email and password are required")
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		for _, c := range starterCategories {
			seed := c
			seed.UserID = user.ID
			if err := tx.Create(&seed).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrStorage, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies the supplied credentials and returns a detached copy
// of the user record. Missing email and wrong password surface as distinct
// failures.
func (s *userService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEmailNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.ErrInvalidPassword
	}

	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrNotFound, "user not found")
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &user, nil
}

// DeleteUser removes a user and everything it owns in one transaction.
func (s *userService) DeleteUser(id uint) error {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.WithMessage(apperrors.ErrNotFound, "user not found")
		}
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Transaction{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.MonthlyBudget{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Category{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if err := tx.Delete(&user).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		return nil
	})
}
