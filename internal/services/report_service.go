package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// reportService runs the read-only aggregation queries.
type reportService struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

// NewReportService creates a new ReportServicer. Calendar months are
// computed in loc.
func NewReportService(db *gorm.DB, loc *time.Location) ReportServicer {
	if loc == nil {
		loc = time.UTC
	}
	return &reportService{db: db, loc: loc, now: time.Now}
}

// MonthWindow returns the half-open range [first of month, first of next
// month) containing ref, in loc.
func MonthWindow(ref time.Time, loc *time.Location) (time.Time, time.Time) {
	ref = ref.In(loc)
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

func (s *reportService) window(ref time.Time) (time.Time, time.Time) {
	if ref.IsZero() {
		ref = s.now()
	}
	start, end := MonthWindow(ref, s.loc)
	return start.UTC(), end.UTC()
}

// GetBalance returns total income minus total expense over all time.
func (s *reportService) GetBalance(ctx context.Context, userID uint) (*models.Balance, error) {
	var balance models.Balance
	err := s.db.WithContext(ctx).
		Table("transactions AS t").
		Select("COALESCE(SUM(CASE WHEN tt.name = ? THEN t.amount WHEN tt.name = ? THEN -t.amount ELSE 0 END), 0) AS total",
			models.TypeNameIncome, models.TypeNameExpense).
		Joins("JOIN transaction_types tt ON tt.id = t.type_id").
		Where("t.user_id = ?", userID).
		Scan(&balance).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	balance.Total = roundMoney(balance.Total)
	return &balance, nil
}

// GetMonthlySummary sums the month's transactions per type. Types without
// activity are absent.
func (s *reportService) GetMonthlySummary(ctx context.Context, userID uint, ref time.Time) ([]models.TypeTotal, error) {
	start, end := s.window(ref)

	totals := []models.TypeTotal{}
	err := s.db.WithContext(ctx).
		Table("transactions AS t").
		Select("tt.name AS type, SUM(t.amount) AS amount").
		Joins("JOIN transaction_types tt ON tt.id = t.type_id").
		Where("t.user_id = ? AND t.date >= ? AND t.date < ?", userID, start, end).
		Group("tt.id, tt.name").
		Order("tt.id").
		Scan(&totals).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for i := range totals {
		totals[i].Amount = roundMoney(totals[i].Amount)
	}
	return totals, nil
}

// GetMonthlyByCategory sums the month's transactions of one type per
// category, largest first, with the category's display color when one is set.
func (s *reportService) GetMonthlyByCategory(ctx context.Context, userID uint, typeName string, ref time.Time) ([]models.CategoryTotal, error) {
	start, end := s.window(ref)

	totals := []models.CategoryTotal{}
	err := s.db.WithContext(ctx).
		Table("transactions AS t").
		Select("c.name AS category, SUM(t.amount) AS amount, cc.color AS color").
		Joins("JOIN categories c ON c.id = t.category_id").
		Joins("JOIN transaction_types tt ON tt.id = t.type_id").
		Joins("LEFT JOIN category_colors cc ON cc.category_id = c.id").
		Where("t.user_id = ? AND tt.name = ? AND t.date >= ? AND t.date < ?", userID, typeName, start, end).
		Group("c.id, c.name, cc.color").
		Order("SUM(t.amount) DESC, c.id").
		Scan(&totals).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for i := range totals {
		totals[i].Amount = roundMoney(totals[i].Amount)
	}
	return totals, nil
}

// ListTransactions returns a filtered page ordered newest first. TotalCount
// counts all of the user's transactions, ignoring the filter.
func (s *reportService) ListTransactions(ctx context.Context, userID uint, page pagination.PageRequest, filter TransactionFilter) (*models.TransactionPage, error) {
	page.Defaults()
	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Transaction{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	q := joinedTransactions(db).Where("t.user_id = ?", userID)
	q = applyTransactionFilters(q, filter)

	views := []models.TransactionView{}
	err := q.Order("t.date DESC, t.id DESC").
		Scopes(pagination.Paginate(page)).
		Scan(&views).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &models.TransactionPage{
		Transactions: views,
		TotalCount:   total,
		Page:         page.Page,
		Limit:        page.Limit,
		TotalPages:   pagination.TotalPages(total, page.Limit),
	}, nil
}

// roundMoney drops the float noise sqlite adds when summing NUMERIC columns
// holding fractional values. Amounts are stored with two decimal places.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.StartDate != nil {
		q = q.Where("t.date >= ?", f.StartDate.UTC())
	}
	if f.EndDate != nil {
		q = q.Where("t.date <= ?", f.EndDate.UTC())
	}
	if f.TypeName != "" && f.TypeName != models.TypeNameAll {
		q = q.Where("tt.name = ?", f.TypeName)
	}
	if len(f.Categories) > 0 {
		q = q.Where("c.name IN ?", f.Categories)
	}
	return q
}
