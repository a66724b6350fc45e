package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/services"
)

// CategoryHandler serves transaction types and categories
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// ListTransactionTypes returns all transaction types
// @Summary     List transaction types
// @Tags        reference
// @Produce     json
// @Success     200 {array} models.TransactionType
// @Failure     500 {object} errors.ErrorBody
// @Router      /transaction_types [get]
func (h *CategoryHandler) ListTransactionTypes(c *gin.Context) {
	types, err := h.categoryService.ListTransactionTypes(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

// ListCategories returns all categories
// @Summary     List categories
// @Tags        reference
// @Produce     json
// @Success     200 {array} models.Category
// @Failure     500 {object} errors.ErrorBody
// @Router      /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// ListCategoriesByType returns the categories of one transaction type
// @Summary     List categories of a type
// @Tags        reference
// @Produce     json
// @Param       type_id path int true "Transaction type ID"
// @Success     200 {array} models.Category
// @Failure     400 {object} errors.ErrorBody
// @Failure     500 {object} errors.ErrorBody
// @Router      /categories/{type_id} [get]
func (h *CategoryHandler) ListCategoriesByType(c *gin.Context) {
	typeID, err := parsePathID(c, "type_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.categoryService.ListCategoriesByType(c.Request.Context(), typeID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}
