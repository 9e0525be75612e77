package repository

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fiitrack/fii-portfolio-backend/internal/model"
)

// ParseTime parses a date string in "2006-01-02", SQLite datetime or RFC3339 format.
func ParseTime(str string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date: %q", str)
}

// ParseDate parses a stored YYYY-MM-DD date column.
func ParseDate(str string) (model.Date, error) {
	t, err := ParseTime(str)
	if err != nil {
		return model.Date{}, err
	}
	return model.DateOf(t), nil
}

// ParseDecimal parses a stored decimal TEXT column.
func ParseDecimal(str string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(str)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to parse decimal: %w", err)
	}
	return d, nil
}
