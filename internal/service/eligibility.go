package service

import (
	"time"

	"github.com/fiitrack/fii-portfolio-backend/internal/model"
)

// ResolveCutDate computes the eligibility cut-off date for a dividend paid on
// paymentDate under a cut-day-of-month policy. The result falls in the same
// year and month as the payment date, with the day clamped to the month's
// length: cutDay 31 resolves to February 28 (29 in leap years).
//
// Callers must branch before calling when the FII has no cut day configured;
// that is a "cannot compute eligibility" case, not an input to this function.
func ResolveCutDate(paymentDate model.Date, cutDay int) model.Date {
	// Day 0 of the following month normalizes to the last day of this one,
	// including the December to January rollover.
	lastDay := time.Date(paymentDate.Year(), paymentDate.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()

	day := cutDay
	if day > lastDay {
		day = lastDay
	}

	return model.NewDate(paymentDate.Year(), paymentDate.Month(), day)
}
