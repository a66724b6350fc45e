package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"fintrack/internal/services"
)

// TransactionHandler handles transaction-related requests
type TransactionHandler struct {
	transactionService services.TransactionServicer
	loc                *time.Location
}

// NewTransactionHandler creates a new TransactionHandler. Bare dates are
// interpreted in loc.
func NewTransactionHandler(transactionService services.TransactionServicer, loc *time.Location) *TransactionHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &TransactionHandler{transactionService: transactionService, loc: loc}
}

// UpdateTransactionRequest represents the editable fields of a transaction
type UpdateTransactionRequest struct {
	CategoryID uint            `json:"category_id" binding:"required"`
	TypeID     uint            `json:"type_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required,gt=0" swaggertype:"number"`
	Date       string          `json:"date" binding:"required,flexdate" example:"2024-03-15"`
	Comment    *string         `json:"comment"`
}

// CreateTransactionRequest represents the request body for creating a transaction
type CreateTransactionRequest struct {
	UserID uint `json:"user_id"`
	UpdateTransactionRequest
}

// CountResponse is the number of a user's transactions
type CountResponse struct {
	Count int64 `json:"count"`
}

func (h *TransactionHandler) toInput(req UpdateTransactionRequest) (services.TransactionInput, error) {
	date, err := parseFlexibleTime(req.Date, h.loc)
	if err != nil {
		return services.TransactionInput{}, err
	}
	return services.TransactionInput{
		CategoryID: req.CategoryID,
		TypeID:     req.TypeID,
		Amount:     req.Amount,
		Date:       date,
		Comment:    req.Comment,
	}, nil
}

// CreateTransaction handles transaction creation
// @Summary     Create a transaction
// @Description Record an income or expense. The category must belong to the given type.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body CreateTransactionRequest true "Transaction data"
// @Success     201 {object} models.TransactionView
// @Failure     400 {object} errors.ErrorBody
// @Failure     403 {object} errors.ErrorBody
// @Failure     500 {object} errors.ErrorBody
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	userID, err := resolveUserID(c, req.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	in, err := h.toInput(req.UpdateTransactionRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	view, err := h.transactionService.CreateTransaction(c.Request.Context(), userID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// UpdateTransaction handles replacing a transaction's fields
// @Summary     Update a transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id path int true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Transaction data"
// @Success     200 {object} models.TransactionView
// @Failure     400 {object} errors.ErrorBody
// @Failure     404 {object} errors.ErrorBody
// @Failure     500 {object} errors.ErrorBody
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	in, err := h.toInput(req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	view, err := h.transactionService.UpdateTransaction(c.Request.Context(), ownerScope(c), id, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// DeleteTransaction handles transaction deletion
// @Summary     Delete a transaction
// @Tags        transactions
// @Produce     json
// @Param       id path int true "Transaction ID"
// @Success     200 {object} MessageResponse
// @Failure     400 {object} errors.ErrorBody
// @Failure     500 {object} errors.ErrorBody
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), ownerScope(c), id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Transaction deleted successfully"})
}

// GetRecentTransactions returns the user's latest transactions
// @Summary     Recent transactions
// @Tags        transactions
// @Produce     json
// @Param       user_id path int true "User ID"
// @Success     200 {array} models.TransactionView
// @Failure     400 {object} errors.ErrorBody
// @Failure     500 {object} errors.ErrorBody
// @Router      /transactions/{user_id} [get]
func (h *TransactionHandler) GetRecentTransactions(c *gin.Context) {
	userID, err := pathUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	views, err := h.transactionService.GetRecentTransactions(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// CountTransactions returns how many transactions the user has
// @Summary     Count transactions
// @Tags        transactions
// @Produce     json
// @Param       user_id path int true "User ID"
// @Success     200 {object} CountResponse
// @Failure     400 {object} errors.ErrorBody
// @Failure     500 {object} errors.ErrorBody
// @Router      /transactions/count/{user_id} [get]
func (h *TransactionHandler) CountTransactions(c *gin.Context) {
	userID, err := pathUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	count, err := h.transactionService.CountTransactions(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CountResponse{Count: count})
}
