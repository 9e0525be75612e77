package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Error struct {
	Fields map[string]string
}

// Error renders the field messages in field-name order so the text is
// stable across calls.
func (e *Error) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return strings.Join(msgs, "; ")
}

// checkDecimal validates that value is a positive decimal with at most
// maxScale fractional digits, recording any problem under field in errors.
func checkDecimal(errors map[string]string, field, value string, maxScale int32) {
	if strings.TrimSpace(value) == "" {
		errors[field] = field + " is required"
		return
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		errors[field] = err.Error()
		return
	}

	if !d.IsPositive() {
		errors[field] = field + " must be positive"
		return
	}

	if -d.Exponent() > maxScale {
		errors[field] = fmt.Sprintf("%s allows at most %d decimal places", field, maxScale)
	}
}

// checkDate validates a required YYYY-MM-DD field.
func checkDate(errors map[string]string, field, value string) {
	if strings.TrimSpace(value) == "" {
		errors[field] = "date is required"
		return
	}
	checkOptionalDate(errors, field, value)
}

// checkOptionalDate validates a YYYY-MM-DD field that may be empty.
func checkOptionalDate(errors map[string]string, field, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		errors[field] = err.Error()
	}
}
