package service

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/fiitrack/fii-portfolio-backend/internal/model"
	"github.com/fiitrack/fii-portfolio-backend/internal/repository"
)

// holdingsConcurrency bounds the per-FII replay fan-out.
const holdingsConcurrency = 4

// HoldingsService computes current positions from the transaction ledger.
// Nothing is cached; like the dividend summary, holdings are derived on
// every read.
type HoldingsService struct {
	transactionRepo *repository.TransactionRepository
}

// NewHoldingsService creates a new HoldingsService with the provided repository dependency.
func NewHoldingsService(transactionRepo *repository.TransactionRepository) *HoldingsService {
	return &HoldingsService{transactionRepo: transactionRepo}
}

// GetHoldings returns the user's open positions ordered by FII tag.
// Each FII's ledger is replayed independently, so the replays fan out with
// bounded concurrency; results land by index to preserve the tag ordering.
// Positions that net to zero units are omitted.
func (s *HoldingsService) GetHoldings(ctx context.Context, userID string) ([]model.Holding, error) {
	fiis, err := s.transactionRepo.GetHeldFiis(userID)
	if err != nil {
		return nil, err
	}

	holdings := make([]model.Holding, len(fiis))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(holdingsConcurrency)

	for i, fii := range fiis {
		i, fii := i, fii
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			transactions, err := s.transactionRepo.GetTransactionsForFii(userID, fii.ID)
			if err != nil {
				return err
			}

			var units int64
			invested := decimal.Zero
			for _, t := range transactions {
				switch t.Type {
				case model.TransactionBuy:
					units += t.Quantity
					invested = invested.Add(t.TotalAmount.Decimal)
				case model.TransactionSell:
					units -= t.Quantity
					invested = invested.Sub(t.TotalAmount.Decimal)
				}
			}

			holdings[i] = model.Holding{
				FiiID:          fii.ID,
				FiiTag:         fii.Tag,
				FiiName:        fii.Name,
				UnitsHeld:      units,
				InvestedAmount: model.NewAmount(invested.Round(2)),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	open := []model.Holding{}
	for _, h := range holdings {
		if h.UnitsHeld > 0 {
			open = append(open, h)
		}
	}

	return open, nil
}
