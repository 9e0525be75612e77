package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fiitrack/fii-portfolio-backend/internal/api/request"
	"github.com/fiitrack/fii-portfolio-backend/internal/model"
	"github.com/fiitrack/fii-portfolio-backend/internal/repository"
)

// DividendService handles dividend records and the monthly eligibility
// aggregation. Units held and totals are never read from storage; every
// summary recomputes them from the transaction ledger so that corrections
// to transactions or cut-day policy apply retroactively.
type DividendService struct {
	dividendRepo       *repository.DividendRepository
	fiiRepo            *repository.FiiRepository
	transactionService *TransactionService
}

// NewDividendService creates a new DividendService with the provided dependencies.
func NewDividendService(
	dividendRepo *repository.DividendRepository,
	fiiRepo *repository.FiiRepository,
	transactionService *TransactionService,
) *DividendService {
	return &DividendService{
		dividendRepo:       dividendRepo,
		fiiRepo:            fiiRepo,
		transactionService: transactionService,
	}
}

// GetDividends retrieves the user's dividends with optional filters.
func (s *DividendService) GetDividends(userID string, filter repository.DividendFilter) ([]model.DividendResponse, error) {
	return s.dividendRepo.GetDividends(userID, filter)
}

// GetDividend retrieves a single dividend owned by the user.
func (s *DividendService) GetDividend(userID, id string) (model.DividendResponse, error) {
	return s.dividendRepo.GetDividend(userID, id)
}

// MonthlySummary aggregates the user's dividends for one calendar month into
// per-FII buckets, computing units held on each dividend's cut-off date from
// the transaction ledger.
//
// Buckets appear in FII tag order (the order rows arrive from the
// repository), so repeated calls over unchanged data produce identical
// output. A month with no dividends yields an empty list and a zero total.
func (s *DividendService) MonthlySummary(userID string, year, month int) (*model.MonthlyDividendSummary, error) {
	rows, err := s.dividendRepo.GetDividendsForMonth(userID, year, time.Month(month))
	if err != nil {
		return nil, err
	}

	summary := &model.MonthlyDividendSummary{
		Year:  year,
		Month: month,
		Fiis:  []model.FiiDividendSummary{},
		Total: model.NewAmount(decimal.Zero),
	}

	// Fold into ordered buckets keyed by FII identity. The index map only
	// locates a bucket; insertion order carries the tag ordering through.
	bucketIndex := make(map[string]int)
	grandTotal := decimal.Zero

	for _, row := range rows {
		// The join already excludes deleted FIIs; skip rather than crash if
		// upstream data ever violates that.
		if row.Fii.ID == "" {
			continue
		}

		var units int64
		if row.Fii.CutDay != nil {
			cutoff := ResolveCutDate(row.Dividend.PaymentDate, *row.Fii.CutDay)
			units, err = s.transactionService.UnitsHeldAt(userID, row.Fii.ID, cutoff)
			if err != nil {
				return nil, err
			}
		}

		lineTotal := row.Dividend.AmountPerUnit.Mul(decimal.NewFromInt(units)).Round(2)

		line := model.DividendSummaryLine{
			DividendID:    row.Dividend.ID,
			PaidOn:        row.Dividend.PaymentDate,
			AmountPerUnit: row.Dividend.AmountPerUnit,
			UnitsHeld:     units,
			TotalAmount:   model.NewAmount(lineTotal),
		}

		i, ok := bucketIndex[row.Fii.ID]
		if !ok {
			summary.Fiis = append(summary.Fiis, model.FiiDividendSummary{
				FiiID:       row.Fii.ID,
				FiiTag:      row.Fii.Tag,
				FiiName:     row.Fii.Name,
				Dividends:   []model.DividendSummaryLine{},
				TotalAmount: model.NewAmount(decimal.Zero),
			})
			i = len(summary.Fiis) - 1
			bucketIndex[row.Fii.ID] = i
		}

		bucket := &summary.Fiis[i]
		bucket.Dividends = append(bucket.Dividends, line)
		bucket.TotalAmount = model.NewAmount(bucket.TotalAmount.Add(lineTotal))
		bucket.DividendCount++

		grandTotal = grandTotal.Add(lineTotal)
	}

	summary.Total = model.NewAmount(grandTotal)

	return summary, nil
}

// CreateDividend records a new dividend payment. When the FII has a cut day
// configured, the resolved cut-off date is cached on the record as com_date;
// the cache is informational and never feeds the monthly summary.
func (s *DividendService) CreateDividend(ctx context.Context, userID string, req request.CreateDividendRequest) (*model.Dividend, error) {
	fii, err := s.fiiRepo.GetFii(req.FiiID)
	if err != nil {
		return nil, err
	}

	paymentDate, err := model.ParseDate(req.PaymentDate)
	if err != nil {
		return nil, err
	}

	var referenceDate *model.Date
	if req.ReferenceDate != "" {
		parsed, err := model.ParseDate(req.ReferenceDate)
		if err != nil {
			return nil, err
		}
		referenceDate = &parsed
	}

	amount, err := decimal.NewFromString(req.AmountPerUnit)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount: %w", err)
	}

	var comDate *model.Date
	if fii.CutDay != nil {
		resolved := ResolveCutDate(paymentDate, *fii.CutDay)
		comDate = &resolved
	}

	now := time.Now()
	dividend := &model.Dividend{
		ID:            uuid.New().String(),
		UserID:        userID,
		FiiID:         req.FiiID,
		PaymentDate:   paymentDate,
		ReferenceDate: referenceDate,
		ComDate:       comDate,
		AmountPerUnit: model.NewUnitAmount(amount),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.dividendRepo.InsertDividend(ctx, dividend); err != nil {
		return nil, fmt.Errorf("failed to create dividend: %w", err)
	}

	return dividend, nil
}

// UpdateDividend applies a partial update to an existing dividend and
// refreshes the cached com_date against the FII's current cut-day policy.
func (s *DividendService) UpdateDividend(ctx context.Context, userID, id string, req request.UpdateDividendRequest) (*model.Dividend, error) {
	existing, err := s.dividendRepo.GetDividend(userID, id)
	if err != nil {
		return nil, err
	}

	dividend := existing.Dividend

	if req.FiiID != nil {
		if _, err := s.fiiRepo.GetFii(*req.FiiID); err != nil {
			return nil, err
		}
		dividend.FiiID = *req.FiiID
	}
	if req.PaymentDate != nil {
		paymentDate, err := model.ParseDate(*req.PaymentDate)
		if err != nil {
			return nil, err
		}
		dividend.PaymentDate = paymentDate
	}
	if req.ReferenceDate != nil {
		if *req.ReferenceDate == "" {
			dividend.ReferenceDate = nil
		} else {
			referenceDate, err := model.ParseDate(*req.ReferenceDate)
			if err != nil {
				return nil, err
			}
			dividend.ReferenceDate = &referenceDate
		}
	}
	if req.AmountPerUnit != nil {
		amount, err := decimal.NewFromString(*req.AmountPerUnit)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount: %w", err)
		}
		dividend.AmountPerUnit = model.NewUnitAmount(amount)
	}

	fii, err := s.fiiRepo.GetFii(dividend.FiiID)
	if err != nil {
		return nil, err
	}
	dividend.ComDate = nil
	if fii.CutDay != nil {
		resolved := ResolveCutDate(dividend.PaymentDate, *fii.CutDay)
		dividend.ComDate = &resolved
	}

	dividend.UpdatedAt = time.Now()

	if err := s.dividendRepo.UpdateDividend(ctx, &dividend); err != nil {
		return nil, err
	}

	return &dividend, nil
}

// DeleteDividend soft deletes a dividend record.
func (s *DividendService) DeleteDividend(ctx context.Context, userID, id string) error {
	return s.dividendRepo.SoftDeleteDividend(ctx, userID, id, time.Now())
}
