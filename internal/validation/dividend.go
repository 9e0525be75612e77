package validation

import (
	"github.com/fiitrack/fii-portfolio-backend/internal/api/request"
)

// ValidateCreateDividend validates a dividend creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - fii_id: Must be a valid UUID
//   - payment_date: Must be in YYYY-MM-DD format
//   - amount_per_unit: Must be a positive decimal with at most 4 decimal places
//
// Optional fields (validated if provided):
//   - reference_date: Must be in YYYY-MM-DD format
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateDividend(req request.CreateDividendRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.FiiID); err != nil {
		return err
	}

	checkDate(errors, "paymentDate", req.PaymentDate)
	checkOptionalDate(errors, "referenceDate", req.ReferenceDate)
	checkDecimal(errors, "amountPerUnit", req.AmountPerUnit, 4)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateDividend validates a dividend update request.
// All fields are optional, but if provided, they must meet the same
// constraints as create. reference_date "" clears the stored value.
func ValidateUpdateDividend(req request.UpdateDividendRequest) error {
	errors := make(map[string]string)

	if req.FiiID != nil {
		if err := ValidateUUID(*req.FiiID); err != nil {
			return err
		}
	}
	if req.PaymentDate != nil {
		checkDate(errors, "paymentDate", *req.PaymentDate)
	}
	if req.ReferenceDate != nil {
		checkOptionalDate(errors, "referenceDate", *req.ReferenceDate)
	}
	if req.AmountPerUnit != nil {
		checkDecimal(errors, "amountPerUnit", *req.AmountPerUnit, 4)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
