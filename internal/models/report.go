package models

import "github.com/shopspring/decimal"

// Balance is the signed sum of a user's incomes minus expenses.
type Balance struct {
	Total decimal.Decimal `json:"total"`
}

// TypeTotal is the summed amount of one transaction type within a period.
type TypeTotal struct {
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// CategoryTotal is the summed amount of one category within a period.
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Color    *string         `json:"color"`
}

// TransactionPage is one page of a filtered listing. TotalCount is the
// number of the user's transactions before filtering.
type TransactionPage struct {
	Transactions []TransactionView `json:"transactions"`
	TotalCount   int64             `json:"totalCount"`
	Page         int               `json:"page"`
	Limit        int               `json:"limit"`
	TotalPages   int               `json:"totalPages"`
}
