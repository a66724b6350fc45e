package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// recentLimit is how many transactions the dashboard shows.
const recentLimit = 8

const transactionViewColumns = "t.id, t.amount, t.date, t.comment, c.name AS category, tt.name AS type, t.category_id, t.type_id"

// joinedTransactions selects transactions with category and type names
// resolved. Callers filter on the t, c and tt aliases.
func joinedTransactions(db *gorm.DB) *gorm.DB {
	return db.Table("transactions AS t").
		Select(transactionViewColumns).
		Joins("JOIN categories c ON c.id = t.category_id").
		Joins("JOIN transaction_types tt ON tt.id = t.type_id")
}

// transactionService handles transaction-related business logic.
type transactionService struct {
	db         *gorm.DB
	users      UserServicer
	categories CategoryServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, users UserServicer, categories CategoryServicer) TransactionServicer {
	return &transactionService{
		db:         db,
		users:      users,
		categories: categories,
	}
}

// validateInput checks the editable fields and returns the stored type id,
// which always comes from the category.
func (s *transactionService) validateInput(ctx context.Context, in TransactionInput) (uint, error) {
	if in.CategoryID == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "category_id is required")
	}
	if in.TypeID == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "type_id is required")
	}
	if !in.Amount.IsPositive() {
		return 0, apperrors.ErrInvalidAmount
	}
	if in.Date.IsZero() {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}

	category, err := s.categories.GetCategory(ctx, in.CategoryID)
	if err != nil {
		return 0, err
	}
	if category.TypeID != in.TypeID {
		return 0, apperrors.ErrCategoryTypeMismatch
	}
	return category.TypeID, nil
}

// CreateTransaction stores a transaction and returns it with names resolved.
func (s *transactionService) CreateTransaction(ctx context.Context, userID uint, in TransactionInput) (*models.TransactionView, error) {
	if userID == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "user_id is required")
	}

	typeID, err := s.validateInput(ctx, in)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "user not found")
		}
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:     userID,
		CategoryID: in.CategoryID,
		TypeID:     typeID,
		Amount:     in.Amount.Round(2),
		Date:       in.Date.UTC(),
		Comment:    in.Comment,
	}
	if err := s.db.WithContext(ctx).Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetTransaction(ctx, 0, transaction.ID)
}

// UpdateTransaction replaces every editable field of a transaction.
func (s *transactionService) UpdateTransaction(ctx context.Context, userID, transactionID uint, in TransactionInput) (*models.TransactionView, error) {
	typeID, err := s.validateInput(ctx, in)
	if err != nil {
		return nil, err
	}

	q := s.db.WithContext(ctx).Model(&models.Transaction{}).Where("id = ?", transactionID)
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}

	result := q.Updates(map[string]interface{}{
		"category_id": in.CategoryID,
		"type_id":     typeID,
		"amount":      in.Amount.Round(2),
		"date":        in.Date.UTC(),
		"comment":     in.Comment,
	})
	if result.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrTransactionNotFound
	}

	return s.GetTransaction(ctx, userID, transactionID)
}

// DeleteTransaction removes a transaction. Deleting a missing id succeeds.
func (s *transactionService) DeleteTransaction(ctx context.Context, userID, transactionID uint) error {
	q := s.db.WithContext(ctx).Where("id = ?", transactionID)
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	if err := q.Delete(&models.Transaction{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetTransaction reads one transaction with names resolved.
func (s *transactionService) GetTransaction(ctx context.Context, userID, transactionID uint) (*models.TransactionView, error) {
	q := joinedTransactions(s.db.WithContext(ctx)).Where("t.id = ?", transactionID)
	if userID != 0 {
		q = q.Where("t.user_id = ?", userID)
	}

	var view models.TransactionView
	if err := q.Take(&view).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &view, nil
}

// GetRecentTransactions returns the user's latest transactions by date.
func (s *transactionService) GetRecentTransactions(ctx context.Context, userID uint) ([]models.TransactionView, error) {
	views := []models.TransactionView{}
	err := joinedTransactions(s.db.WithContext(ctx)).
		Where("t.user_id = ?", userID).
		Order("t.date DESC, t.id DESC").
		Limit(recentLimit).
		Scan(&views).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return views, nil
}

func (s *transactionService) CountTransactions(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count, nil
}
