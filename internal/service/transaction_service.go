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

// TransactionService handles the buy/sell ledger and answers the
// holdings-at-date question the dividend eligibility computation depends on.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	fiiRepo         *repository.FiiRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	fiiRepo *repository.FiiRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		fiiRepo:         fiiRepo,
	}
}

// GetTransactions retrieves the user's transactions with optional filters.
func (s *TransactionService) GetTransactions(userID string, filter repository.TransactionFilter) ([]model.TransactionResponse, error) {
	return s.transactionRepo.GetTransactions(userID, filter)
}

// GetTransaction retrieves a single transaction owned by the user.
func (s *TransactionService) GetTransaction(userID, id string) (model.TransactionResponse, error) {
	return s.transactionRepo.GetTransaction(userID, id)
}

// UnitsHeldAt replays the user's ledger for one FII and returns the net units
// held on the cutoff date. Buys and sells dated exactly on the cutoff both
// count, so a same-day round trip nets to zero eligibility. Oversold
// positions clamp to zero rather than erroring; an empty ledger is simply
// zero holdings.
func (s *TransactionService) UnitsHeldAt(userID, fiiID string, cutoff model.Date) (int64, error) {
	bought, sold, err := s.transactionRepo.SumUnitsAt(userID, fiiID, cutoff)
	if err != nil {
		return 0, err
	}

	units := bought - sold
	if units < 0 {
		units = 0
	}

	return units, nil
}

// CreateTransaction records a new buy or sell. The total amount is derived
// from quantity and unit price, never taken from the client.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID string, req request.CreateTransactionRequest) (*model.Transaction, error) {
	// Reject transactions against unknown or deleted FIIs up front.
	if _, err := s.fiiRepo.GetFii(req.FiiID); err != nil {
		return nil, err
	}

	date, err := model.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(req.PricePerUnit)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price: %w", err)
	}

	now := time.Now()
	transaction := &model.Transaction{
		ID:           uuid.New().String(),
		UserID:       userID,
		FiiID:        req.FiiID,
		Type:         req.Type,
		Date:         date,
		Quantity:     req.Quantity,
		PricePerUnit: model.NewAmount(price),
		TotalAmount:  model.NewAmount(price.Mul(decimal.NewFromInt(req.Quantity)).Round(2)),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.transactionRepo.InsertTransaction(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return transaction, nil
}

// UpdateTransaction applies a partial update to an existing transaction and
// rederives the total amount.
func (s *TransactionService) UpdateTransaction(ctx context.Context, userID, id string, req request.UpdateTransactionRequest) (*model.Transaction, error) {
	existing, err := s.transactionRepo.GetTransaction(userID, id)
	if err != nil {
		return nil, err
	}

	transaction := existing.Transaction

	if req.FiiID != nil {
		if _, err := s.fiiRepo.GetFii(*req.FiiID); err != nil {
			return nil, err
		}
		transaction.FiiID = *req.FiiID
	}
	if req.Type != nil {
		transaction.Type = *req.Type
	}
	if req.Date != nil {
		date, err := model.ParseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		transaction.Date = date
	}
	if req.Quantity != nil {
		transaction.Quantity = *req.Quantity
	}
	if req.PricePerUnit != nil {
		price, err := decimal.NewFromString(*req.PricePerUnit)
		if err != nil {
			return nil, fmt.Errorf("failed to parse price: %w", err)
		}
		transaction.PricePerUnit = model.NewAmount(price)
	}

	transaction.TotalAmount = model.NewAmount(
		transaction.PricePerUnit.Mul(decimal.NewFromInt(transaction.Quantity)).Round(2),
	)
	transaction.UpdatedAt = time.Now()

	if err := s.transactionRepo.UpdateTransaction(ctx, &transaction); err != nil {
		return nil, err
	}

	return &transaction, nil
}

// DeleteTransaction soft deletes a transaction. The row stops counting toward
// holdings and dividend eligibility immediately.
func (s *TransactionService) DeleteTransaction(ctx context.Context, userID, id string) error {
	return s.transactionRepo.SoftDeleteTransaction(ctx, userID, id, time.Now())
}
