package request

// CreateDividendRequest represents the request body for recording a dividend payment.
// ReferenceDate is optional. Units held and totals are never accepted from the
// client; they are computed from the transaction ledger on read.
type CreateDividendRequest struct {
	FiiID         string `json:"fii_id"`
	PaymentDate   string `json:"payment_date"`
	ReferenceDate string `json:"reference_date,omitempty"`
	AmountPerUnit string `json:"amount_per_unit"`
}

// UpdateDividendRequest represents the request body for updating a dividend.
// All fields are optional (use pointers). Only provided fields will be updated.
// Sending reference_date "" clears it.
type UpdateDividendRequest struct {
	FiiID         *string `json:"fii_id,omitempty"`
	PaymentDate   *string `json:"payment_date,omitempty"`
	ReferenceDate *string `json:"reference_date,omitempty"`
	AmountPerUnit *string `json:"amount_per_unit,omitempty"`
}
