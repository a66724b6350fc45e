package models

// Category is seeded reference data. A category is only valid for its own
// transaction type.
type Category struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"not null" json:"name"`
	TypeID uint   `gorm:"not null;index" json:"type_id"`

	Type  *TransactionType `gorm:"foreignKey:TypeID" json:"-"`
	Color *CategoryColor   `gorm:"foreignKey:CategoryID" json:"-"`
}

// CategoryColor is the display color used by the per-category charts.
type CategoryColor struct {
	CategoryID uint   `gorm:"primaryKey;autoIncrement:false" json:"category_id"`
	Color      string `gorm:"not null" json:"color"`
}
