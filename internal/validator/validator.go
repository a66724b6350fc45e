// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"
	"time"

	"fintrack/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date form accepted alongside RFC3339.
const DateLayout = "2006-01-02"

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		_ = v.RegisterValidation("flexdate", validateFlexDate)
		_ = v.RegisterValidation("type_filter", validateTypeFilter)
	}
}

// decimalValue exposes decimals to numeric tags such as gt=0.
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return nil
}

// ParseDate accepts a calendar date (YYYY-MM-DD) or an RFC3339 timestamp.
// The second return value reports whether the input was a bare date.
func ParseDate(raw string, loc *time.Location) (time.Time, bool, error) {
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.ParseInLocation(DateLayout, raw, loc); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	return t, false, err
}

func validateFlexDate(fl validator.FieldLevel) bool {
	_, _, err := ParseDate(fl.Field().String(), time.UTC)
	return err == nil
}

func validateTypeFilter(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", models.TypeNameAll, models.TypeNameIncome, models.TypeNameExpense:
		return true
	}
	return false
}
