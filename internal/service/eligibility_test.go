package service_test

import (
	"testing"
	"time"

	"github.com/fiitrack/fii-portfolio-backend/internal/model"
	"github.com/fiitrack/fii-portfolio-backend/internal/service"
)

func TestResolveCutDate(t *testing.T) {
	tests := []struct {
		name        string
		paymentDate model.Date
		cutDay      int
		want        model.Date
	}{
		{
			name:        "cut day within month",
			paymentDate: model.NewDate(2024, time.January, 25),
			cutDay:      15,
			want:        model.NewDate(2024, time.January, 15),
		},
		{
			name:        "cut day equals payment day",
			paymentDate: model.NewDate(2024, time.March, 10),
			cutDay:      10,
			want:        model.NewDate(2024, time.March, 10),
		},
		{
			name:        "cut day 31 clamps to 29 in leap February",
			paymentDate: model.NewDate(2024, time.February, 20),
			cutDay:      31,
			want:        model.NewDate(2024, time.February, 29),
		},
		{
			name:        "cut day 31 clamps to 28 in non-leap February",
			paymentDate: model.NewDate(2023, time.February, 20),
			cutDay:      31,
			want:        model.NewDate(2023, time.February, 28),
		},
		{
			name:        "cut day 30 clamps in February",
			paymentDate: model.NewDate(2025, time.February, 5),
			cutDay:      30,
			want:        model.NewDate(2025, time.February, 28),
		},
		{
			name:        "cut day 31 clamps to 30 in April",
			paymentDate: model.NewDate(2024, time.April, 12),
			cutDay:      31,
			want:        model.NewDate(2024, time.April, 30),
		},
		{
			name:        "cut day 31 stays 31 in December",
			paymentDate: model.NewDate(2024, time.December, 1),
			cutDay:      31,
			want:        model.NewDate(2024, time.December, 31),
		},
		{
			name:        "cut day 1 is never clamped",
			paymentDate: model.NewDate(2024, time.February, 29),
			cutDay:      1,
			want:        model.NewDate(2024, time.February, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := service.ResolveCutDate(tt.paymentDate, tt.cutDay)
			if !got.Equal(tt.want.Time) {
				t.Errorf("ResolveCutDate(%s, %d) = %s, want %s",
					tt.paymentDate, tt.cutDay, got, tt.want)
			}
		})
	}
}

func TestResolveCutDateStaysInPaymentMonth(t *testing.T) {
	// The cut-off date always lands in the payment month, whatever the
	// combination of month length and cut day.
	for month := time.January; month <= time.December; month++ {
		for cutDay := 1; cutDay <= 31; cutDay++ {
			paymentDate := model.NewDate(2023, month, 15)
			got := service.ResolveCutDate(paymentDate, cutDay)

			if got.Year() != 2023 || got.Month() != month {
				t.Errorf("ResolveCutDate(%s, %d) = %s, escaped the payment month",
					paymentDate, cutDay, got)
			}
		}
	}
}
