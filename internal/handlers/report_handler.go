package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// ReportHandler serves the dashboard aggregations
type ReportHandler struct {
	reportService services.ReportServicer
	loc           *time.Location
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService services.ReportServicer, loc *time.Location) *ReportHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportHandler{reportService: reportService, loc: loc}
}

// ListQuery holds the paginated listing's query parameters
type ListQuery struct {
	pagination.PageRequest
	StartDate string `form:"startDate" binding:"omitempty,flexdate"`
	EndDate   string `form:"endDate" binding:"omitempty,flexdate"`
	Type      string `form:"type" binding:"type_filter"`
}

// referenceDate reads the optional ?date= month selector.
func (h *ReportHandler) referenceDate(c *gin.Context) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		return time.Time{}, nil
	}
	return parseFlexibleTime(raw, h.loc)
}

// GetBalance returns income minus expense over all time
// @Summary     Balance
// @Tags        reports
// @Produce     json
// @Param       user_id path int true "User ID"
// @Success     200 {object} models.Balance
// @Failure     400 {object} errors.ErrorBody
// @Failure     500 {object} errors.ErrorBody
// @Router      /transactions/total/{user_id} [get]
func (h *ReportHandler) GetBalance(c *gin.Context) {
	userID, err := pathUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	balance, err := h.reportService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, balance)
}

// GetMonthlySummary returns the month's totals per transaction type
// @Summary     Monthly totals by type
// @Tags        reports
// @Produce     json
// @Param       user_id path int true "User ID"
// @Param       date query string false "Any date in the month, defaults to today"
// @Success     200 {array} models.TypeTotal
// @Failure     400 {object} errors.ErrorBody
// @Failure     500 {object} errors.ErrorBody
// @Router      /transactions/monthly/{user_id} [get]
func (h *ReportHandler) GetMonthlySummary(c *gin.Context) {
	userID, err := pathUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	ref, err := h.referenceDate(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.reportService.GetMonthlySummary(c.Request.Context(), userID, ref)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}

// GetMonthlyIncomes returns the month's income per category
// @Summary     Monthly income by category
// @Tags        reports
// @Produce     json
// @Param       user_id path int true "User ID"
// @Param       date query string false "Any date in the month, defaults to today"
// @Success     200 {array} models.CategoryTotal
// @Failure     400 {object} errors.ErrorBody
// @Failure     500 {object} errors.ErrorBody
// @Router      /transactions/monthly-incomes/{user_id} [get]
func (h *ReportHandler) GetMonthlyIncomes(c *gin.Context) {
	h.monthlyByCategory(c, models.TypeNameIncome)
}

// GetMonthlyExpenses returns the month's expense per category
// @Summary     Monthly expense by category
// @Tags        reports
// @Produce     json
// @Param       user_id path int true "User ID"
// @Param       date query string false "Any date in the month, defaults to today"
// @Success     200 {array} models.CategoryTotal
// @Failure     400 {object} errors.ErrorBody
// @Failure     500 {object} errors.ErrorBody
// @Router      /transactions/monthly-expenses/{user_id} [get]
func (h *ReportHandler) GetMonthlyExpenses(c *gin.Context) {
	h.monthlyByCategory(c, models.TypeNameExpense)
}

func (h *ReportHandler) monthlyByCategory(c *gin.Context, typeName string) {
	userID, err := pathUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	ref, err := h.referenceDate(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.reportService.GetMonthlyByCategory(c.Request.Context(), userID, typeName, ref)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}

// ListTransactions returns a filtered page of transactions
// @Summary     Paginated transactions
// @Description totalCount is the user's total number of transactions, ignoring filters.
// @Tags        reports
// @Produce     json
// @Param       user_id    path  int    true  "User ID"
// @Param       page       query int    false "Page number" default(1)
// @Param       limit      query int    false "Page size" default(8)
// @Param       startDate  query string false "Inclusive start date"
// @Param       endDate    query string false "Inclusive end date"
// @Param       type       query string false "Transaction type name"
// @Param       categories query []string false "Category names" collectionFormat(multi)
// @Success     200 {object} models.TransactionPage
// @Failure     400 {object} errors.ErrorBody
// @Failure     500 {object} errors.ErrorBody
// @Router      /transactions/paginated/{user_id} [get]
func (h *ReportHandler) ListTransactions(c *gin.Context) {
	userID, err := pathUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	filter := services.TransactionFilter{TypeName: q.Type}
	if q.StartDate != "" {
		start, err := parseFlexibleTime(q.StartDate, h.loc)
		if err != nil {
			respondWithError(c, err)
			return
		}
		filter.StartDate = &start
	}
	if q.EndDate != "" {
		end, err := parseEndOfRange(q.EndDate, h.loc)
		if err != nil {
			respondWithError(c, err)
			return
		}
		filter.EndDate = &end
	}
	filter.Categories = categoryNames(c)

	page, err := h.reportService.ListTransactions(c.Request.Context(), userID, q.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// categoryNames accepts both categories=a&categories=b and the bracketed
// categories[]=a form, skipping blanks.
func categoryNames(c *gin.Context) []string {
	var names []string
	for _, key := range []string{"categories", "categories[]"} {
		for _, v := range c.QueryArray(key) {
			if v != "" {
				names = append(names, v)
			}
		}
	}
	return names
}
