package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// UserServicer defines the contract for registration and login.
type UserServicer interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

// CategoryServicer exposes the read-only reference data.
type CategoryServicer interface {
	ListTransactionTypes(ctx context.Context) ([]models.TransactionType, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListCategoriesByType(ctx context.Context, typeID uint) ([]models.Category, error)
	GetCategory(ctx context.Context, id uint) (*models.Category, error)
}

// TransactionInput carries the client-editable fields of a transaction.
type TransactionInput struct {
	CategoryID uint
	TypeID     uint
	Amount     decimal.Decimal
	Date       time.Time
	Comment    *string
}

// TransactionServicer defines the contract for transaction CRUD.
// A zero userID on update, delete and get means the call is not scoped to an
// owner.
type TransactionServicer interface {
	CreateTransaction(ctx context.Context, userID uint, in TransactionInput) (*models.TransactionView, error)
	UpdateTransaction(ctx context.Context, userID, transactionID uint, in TransactionInput) (*models.TransactionView, error)
	DeleteTransaction(ctx context.Context, userID, transactionID uint) error
	GetTransaction(ctx context.Context, userID, transactionID uint) (*models.TransactionView, error)
	GetRecentTransactions(ctx context.Context, userID uint) ([]models.TransactionView, error)
	CountTransactions(ctx context.Context, userID uint) (int64, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
// Nil dates and empty values apply no restriction.
type TransactionFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	TypeName   string
	Categories []string
}

// ReportServicer defines the aggregation queries behind the dashboard.
// A zero reference time means the current month.
type ReportServicer interface {
	GetBalance(ctx context.Context, userID uint) (*models.Balance, error)
	GetMonthlySummary(ctx context.Context, userID uint, ref time.Time) ([]models.TypeTotal, error)
	GetMonthlyByCategory(ctx context.Context, userID uint, typeName string, ref time.Time) ([]models.CategoryTotal, error)
	ListTransactions(ctx context.Context, userID uint, page pagination.PageRequest, filter TransactionFilter) (*models.TransactionPage, error)
}
