package model

import "time"

// Transaction type values.
const (
	TransactionBuy  = "buy"
	TransactionSell = "sell"
)

// Transaction represents a single FII buy or sell operation owned by one user.
type Transaction struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	FiiID        string    `json:"fii_id"`
	Type         string    `json:"type"`
	Date         Date      `json:"date"`
	Quantity     int64     `json:"quantity"`
	PricePerUnit Amount    `json:"price_per_unit"`
	TotalAmount  Amount    `json:"total_amount"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TransactionResponse is a transaction enriched with the FII tag for API responses.
type TransactionResponse struct {
	Transaction
	FiiTag string `json:"fii_tag"`
}
