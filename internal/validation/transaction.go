package validation

import (
	"fmt"

	"github.com/fiitrack/fii-portfolio-backend/internal/api/request"
)

// ValidTransactionType contains the allowed transaction type values.
var ValidTransactionType = map[string]bool{
	"buy": true, "sell": true,
}

// ValidateCreateTransaction validates a transaction creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - fii_id: Must be a valid UUID
//   - date: Must be in YYYY-MM-DD format
//   - type: Must be one of: buy, sell
//   - quantity: Must be a positive integer
//   - price_per_unit: Must be a positive decimal with at most 2 decimal places
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.FiiID); err != nil {
		return err
	}

	checkDate(errors, "date", req.Date)
	checkTransactionType(errors, req.Type)

	if req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}

	checkDecimal(errors, "pricePerUnit", req.PricePerUnit, 2)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateTransaction validates a transaction update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	errors := make(map[string]string)

	if req.FiiID != nil {
		if err := ValidateUUID(*req.FiiID); err != nil {
			return err
		}
	}
	if req.Date != nil {
		checkDate(errors, "date", *req.Date)
	}
	if req.Type != nil {
		checkTransactionType(errors, *req.Type)
	}
	if req.Quantity != nil && *req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}
	if req.PricePerUnit != nil {
		checkDecimal(errors, "pricePerUnit", *req.PricePerUnit, 2)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func checkTransactionType(errors map[string]string, transactionType string) {
	if transactionType == "" {
		errors["type"] = "type is required"
	} else if !ValidTransactionType[transactionType] {
		errors["type"] = fmt.Sprintf("invalid type: %s", transactionType)
	}
}
