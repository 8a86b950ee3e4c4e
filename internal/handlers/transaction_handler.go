package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "grana/internal/errors"
	"grana/internal/models"
	"grana/internal/pagination"
	"grana/internal/services"
)

// TransactionHandler handles ledger requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for creating a
// transaction. Installments above 1 expand into one transaction per month,
// each carrying the given amount, starting at the given date.
type CreateTransactionRequest struct {
	CategoryID   uint                  `json:"category_id" binding:"required"`
	Date         time.Time             `json:"date" binding:"required"`
	Amount       decimal.Decimal       `json:"amount" binding:"required"`
	Description  string                `json:"description" binding:"required,max=255"`
	Recurrence   models.RecurrenceKind `json:"recurrence" binding:"omitempty,recurrence_kind"`
	Installments int                   `json:"installments" binding:"omitempty,min=1,max=60"`
}

// UpdateTransactionRequest represents the request payload for updating a transaction.
type UpdateTransactionRequest struct {
	CategoryID  uint                  `json:"category_id" binding:"required"`
	Date        time.Time             `json:"date" binding:"required"`
	Amount      decimal.Decimal       `json:"amount" binding:"required"`
	Description string                `json:"description" binding:"required,max=255"`
	Recurrence  models.RecurrenceKind `json:"recurrence" binding:"omitempty,recurrence_kind"`
}

// CreateTransaction handles the creation of new ledger entries
// @Summary     Create a transaction
// @Description Record a transaction. With installments > 1, one entry is created per month starting at the given date.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {array} models.Transaction "Transactions created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	recurrence := req.Recurrence
	if recurrence == "" {
		recurrence = models.RecurrenceVariable
	}

	installments := req.Installments
	if installments == 0 {
		installments = 1
	}

	created := make([]*models.Transaction, 0, installments)
	for i := 0; i < installments; i++ {
		description := req.Description
		if installments > 1 {
			description = fmt.Sprintf("%s (%d/%d)", req.Description, i+1, installments)
		}

		tx, err := h.transactionService.CreateTransaction(
			userID, req.CategoryID, req.Date.AddDate(0, i, 0), req.Amount, description, recurrence,
		)
		if err != nil {
			respondWithError(c, err)
			return
		}
		created = append(created, tx)
	}

	c.JSON(http.StatusCreated, gin.H{"transactions": created})
}

// ListTransactions handles listing ledger entries
// @Summary     Get transactions
// @Description Get a paginated list of the user's transactions, newest first, optionally filtered by month, year, and category
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month       query int false "Filter by month (1-12)"
// @Param       year        query int false "Filter by year"
// @Param       category_id query int false "Filter by category"
// @Param       page        query int false "Page number (default 1)"
// @Param       page_size   query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[services.TransactionView] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	var filter services.TransactionFilter
	if v := c.Query("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil || month < 1 || month > 12 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, "month must be between 1 and 12"))
			return
		}
		filter.Month = &month
	}
	if v := c.Query("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil || year <= 0 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, "year must be a positive integer"))
			return
		}
		filter.Year = &year
	}
	if v := c.Query("category_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, "Invalid category_id"))
			return
		}
		categoryID := uint(id)
		filter.CategoryID = &categoryID
	}

	result, err := h.transactionService.ListTransactions(userID, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransaction handles the retrieval of a specific transaction
// @Summary     Get transaction by ID
// @Description Get one of the user's transactions with its category resolved
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} services.TransactionView "Transaction details"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	view, err := h.transactionService.GetTransaction(userID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": view})
}

// UpdateTransaction handles updating a transaction
// @Summary     Update transaction
// @Description Rewrite every field of an existing transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Updated transaction details"
// @Success     200 {object} models.Transaction "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input or transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction or category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	recurrence := req.Recurrence
	if recurrence == "" {
		recurrence = models.RecurrenceVariable
	}

	tx, err := h.transactionService.UpdateTransaction(
		userID, transactionID, req.CategoryID, req.Date, req.Amount, req.Description, recurrence,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

// DeleteTransaction handles deleting a transaction
// @Summary     Delete transaction
// @Description Delete one of the user's transactions by ID
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} MessageResponse "Transaction deleted"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

// GetPeriodTotals handles the month income/expense/balance rollup
// @Summary     Get period totals
// @Description Get the income total, expense total, and balance for one month
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month query int true "Month (1-12)"
// @Param       year  query int true "Year"
// @Success     200 {object} services.PeriodTotals "Period totals"
// @Failure     400 {object} ErrorResponse "Invalid period"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/totals [get]
func (h *TransactionHandler) GetPeriodTotals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, year, err := parsePeriod(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.transactionService.ComputePeriodTotals(userID, month, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"totals": totals})
}
