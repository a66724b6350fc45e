package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single income or expense entry
type Transaction struct {
	Base
	UserID     uint            `gorm:"not null;index" json:"user_id"`
	CategoryID uint            `gorm:"not null" json:"category_id"`
	TypeID     uint            `gorm:"not null" json:"type_id"`
	Amount     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Date       time.Time       `gorm:"not null;index" json:"date"`
	Comment    *string         `json:"comment"`

	// Relationships
	User     *User            `gorm:"foreignKey:UserID" json:"-"`
	Category *Category        `gorm:"foreignKey:CategoryID" json:"-"`
	Type     *TransactionType `gorm:"foreignKey:TypeID" json:"-"`
}

// TransactionView is a transaction with its category and type resolved to
// display names.
type TransactionView struct {
	ID         uint            `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	Comment    *string         `json:"comment"`
	Category   string          `json:"category"`
	Type       string          `json:"type"`
	CategoryID uint            `json:"category_id"`
	TypeID     uint            `json:"type_id"`
}
