package models

// Names of the seeded transaction types. Aggregations key on the name, not
// the id.
const (
	TypeNameIncome  = "Доход"
	TypeNameExpense = "Расход"

	// TypeNameAll is the listing filter value meaning "any type".
	TypeNameAll = "Все типы"
)

// TransactionType is a row of the fixed transaction_types lookup table.
type TransactionType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}
