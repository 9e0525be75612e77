package model

// DividendSummaryLine is one dividend inside a monthly summary, with the
// eligibility figures computed from the transaction ledger at query time.
type DividendSummaryLine struct {
	DividendID    string     `json:"dividend_id"`
	PaidOn        Date       `json:"paid_on"`
	AmountPerUnit UnitAmount `json:"amount_per_unit"`
	UnitsHeld     int64      `json:"units_held"`
	TotalAmount   Amount     `json:"total_amount"`
}

// FiiDividendSummary groups a month's dividends for a single FII.
type FiiDividendSummary struct {
	FiiID         string                `json:"fii_id"`
	FiiTag        string                `json:"fii_tag"`
	FiiName       string                `json:"fii_name"`
	Dividends     []DividendSummaryLine `json:"dividends"`
	TotalAmount   Amount                `json:"total_amount"`
	DividendCount int                   `json:"dividend_count"`
}

// MonthlyDividendSummary is the full per-month aggregation returned by
// GET /api/v1/dividends/summary/monthly. Buckets appear in FII tag order.
type MonthlyDividendSummary struct {
	Year  int                  `json:"year"`
	Month int                  `json:"month"`
	Fiis  []FiiDividendSummary `json:"fiis"`
	Total Amount               `json:"total"`
}

// Holding is a user's current position in one FII, computed on read from
// the transaction ledger.
type Holding struct {
	FiiID          string `json:"fii_id"`
	FiiTag         string `json:"fii_tag"`
	FiiName        string `json:"fii_name"`
	UnitsHeld      int64  `json:"units_held"`
	InvestedAmount Amount `json:"invested_amount"`
}
