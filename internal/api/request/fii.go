package request

// CreateFiiRequest represents the request body for creating a catalog entry.
// Sector and cut day are optional.
type CreateFiiRequest struct {
	Tag    string  `json:"tag"`
	Name   string  `json:"name"`
	Sector *string `json:"sector,omitempty"`
	CutDay *int    `json:"cut_day,omitempty"`
}

// UpdateFiiRequest represents the request body for updating a catalog entry.
// All fields are optional (use pointers). Only provided fields will be updated.
// Sending sector "" clears the sector; sending cut_day 0 clears the cut day.
type UpdateFiiRequest struct {
	Tag    *string `json:"tag,omitempty"`
	Name   *string `json:"name,omitempty"`
	Sector *string `json:"sector,omitempty"`
	CutDay *int    `json:"cut_day,omitempty"`
}
