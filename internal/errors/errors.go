// Package errors defines the failure taxonomy of the service layer.
// Every service operation returns either its payload or an *AppError; raw
// infrastructure errors never cross the service boundary unclassified.
package errors

import "net/http"

// AppError is a tagged failure: a stable machine-readable code, a message
// safe to show to users, the HTTP status it maps to, and an optional
// wrapped internal cause that is logged but never rendered.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap exposes the internal cause to errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap returns a copy of sentinel carrying internal as its cause.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage returns a copy of sentinel with a more specific message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General failures.
var (
	ErrValidation   = &AppError{Code: "VALIDATION_ERROR", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound     = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrStorage      = &AppError{Code: "STORAGE_ERROR", Message: "A storage error occurred", StatusCode: http.StatusInternalServerError}
	ErrUnauthorized = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInternal     = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Identity failures.
var (
	ErrDuplicateEmail  = &AppError{Code: "DUPLICATE_EMAIL", Message: "This email is already registered", StatusCode: http.StatusConflict}
	ErrEmailNotFound   = &AppError{Code: "EMAIL_NOT_FOUND", Message: "Email not found", StatusCode: http.StatusUnauthorized}
	ErrInvalidPassword = &AppError{Code: "INVALID_PASSWORD", Message: "Incorrect password", StatusCode: http.StatusUnauthorized}
)

// Category failures.
var (
	ErrDuplicateName    = &AppError{Code: "DUPLICATE_NAME", Message: "A category with this name already exists", StatusCode: http.StatusConflict}
	ErrHasDependents    = &AppError{Code: "HAS_DEPENDENTS", Message: "Category has transactions or budgets attached", StatusCode: http.StatusConflict}
	ErrCategoryNotFound = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
)

// Budget failures.
var (
	ErrNotExpenseCategory = &AppError{Code: "NOT_EXPENSE_CATEGORY", Message: "Budgets can only be set on expense categories", StatusCode: http.StatusBadRequest}
)
