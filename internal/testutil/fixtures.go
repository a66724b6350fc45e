package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of users made by CreateTestUser.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestTransaction inserts a transaction directly, bypassing service
// validation. amount is a decimal string such as "100" or "12.50".
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID, categoryID, typeID uint, amount string, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:     userID,
		CategoryID: categoryID,
		TypeID:     typeID,
		Amount:     decimal.RequireFromString(amount),
		Date:       date.UTC(),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestIncome records an income in the salary category.
func CreateTestIncome(t *testing.T, db *gorm.DB, userID uint, amount string, date time.Time) *models.Transaction {
	t.Helper()
	return CreateTestTransaction(t, db, userID, SalaryCategoryID, IncomeTypeID, amount, date)
}

// CreateTestExpense records an expense in the groceries category.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID uint, amount string, date time.Time) *models.Transaction {
	t.Helper()
	return CreateTestTransaction(t, db, userID, GroceriesCategoryID, ExpenseTypeID, amount, date)
}
