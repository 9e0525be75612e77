package model

import "time"

// Fii represents one entry in the shared FII master catalog.
// The catalog is not user-scoped; ownership applies to transactions
// and dividends referencing it.
type Fii struct {
	ID     string  `json:"id"`
	Tag    string  `json:"tag"`
	Name   string  `json:"name"`
	Sector *string `json:"sector,omitempty"`

	// CutDay is the day of month (1-31) used to resolve the dividend
	// eligibility cut-off date. Nil means eligibility cannot be computed
	// for this FII and units held default to zero.
	CutDay *int `json:"cut_day,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
