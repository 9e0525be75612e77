package request

// CreateTransactionRequest represents the request body for recording a buy or sell.
// The total amount is derived server-side from quantity and price.
type CreateTransactionRequest struct {
	FiiID        string `json:"fii_id"`
	Type         string `json:"type"`
	Date         string `json:"date"`
	Quantity     int64  `json:"quantity"`
	PricePerUnit string `json:"price_per_unit"`
}

// UpdateTransactionRequest represents the request body for updating a transaction.
// All fields are optional (use pointers). Only provided fields will be updated.
type UpdateTransactionRequest struct {
	FiiID        *string `json:"fii_id,omitempty"`
	Type         *string `json:"type,omitempty"`
	Date         *string `json:"date,omitempty"`
	Quantity     *int64  `json:"quantity,omitempty"`
	PricePerUnit *string `json:"price_per_unit,omitempty"`
}
