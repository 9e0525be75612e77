package model

import "time"

// Dividend represents one dividend payment received by a user from a FII.
//
// Units held and the resulting total are not stored: both are recomputed
// from the transaction ledger on every read, so retroactive corrections to
// transactions or to the FII's cut day are always reflected. ComDate caches
// the cut-off date that was resolved when the record was written and is
// informational only.
type Dividend struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	FiiID         string     `json:"fii_id"`
	PaymentDate   Date       `json:"payment_date"`
	ReferenceDate *Date      `json:"reference_date,omitempty"`
	ComDate       *Date      `json:"com_date,omitempty"`
	AmountPerUnit UnitAmount `json:"amount_per_unit"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// DividendResponse is a dividend enriched with the FII tag for API responses.
type DividendResponse struct {
	Dividend
	FiiTag string `json:"fii_tag"`
}
