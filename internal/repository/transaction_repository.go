package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fiitrack/fii-portfolio-backend/internal/apperrors"
	"github.com/fiitrack/fii-portfolio-backend/internal/model"
)

// TransactionFilter narrows transaction listings. Zero values mean "no filter".
type TransactionFilter struct {
	FiiID     string
	StartDate *model.Date
	EndDate   *model.Date
	Skip      int
	Limit     int
}

// TransactionRepository provides data access methods for the fii_transaction table.
// All reads are scoped to a single owning user and exclude soft-deleted rows.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// GetTransactions retrieves a user's transactions ordered by date ascending,
// enriched with the FII tag.
func (r *TransactionRepository) GetTransactions(userID string, filter TransactionFilter) ([]model.TransactionResponse, error) {
	query := `
		SELECT t.id, t.user_id, t.fii_id, f.tag, t.type, t.date,
			t.quantity, t.price_per_unit, t.total_amount, t.created_at, t.updated_at
		FROM fii_transaction t
		JOIN fii f ON t.fii_id = f.id
		WHERE t.user_id = ? AND t.deleted_at IS NULL
	`

	args := []any{userID}
	if filter.FiiID != "" {
		query += ` AND t.fii_id = ?`
		args = append(args, filter.FiiID)
	}
	if filter.StartDate != nil {
		query += ` AND t.date >= ?`
		args = append(args, filter.StartDate.String())
	}
	if filter.EndDate != nil {
		query += ` AND t.date <= ?`
		args = append(args, filter.EndDate.String())
	}
	query += ` ORDER BY t.date ASC, t.id ASC LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, filter.Skip)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query fii_transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.TransactionResponse{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fii_transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransaction retrieves a single transaction owned by the user.
// Returns apperrors.ErrTransactionNotFound if it does not exist or is deleted.
func (r *TransactionRepository) GetTransaction(userID, id string) (model.TransactionResponse, error) {
	query := `
		SELECT t.id, t.user_id, t.fii_id, f.tag, t.type, t.date,
			t.quantity, t.price_per_unit, t.total_amount, t.created_at, t.updated_at
		FROM fii_transaction t
		JOIN fii f ON t.fii_id = f.id
		WHERE t.id = ? AND t.user_id = ? AND t.deleted_at IS NULL
	`

	t, err := scanTransaction(r.db.QueryRow(query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.TransactionResponse{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.TransactionResponse{}, err
	}

	return t, nil
}

// InsertTransaction creates a new transaction row.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, t *model.Transaction) error {
	query := `
		INSERT INTO fii_transaction (id, user_id, fii_id, type, date, quantity,
			price_per_unit, total_amount, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.UserID,
		t.FiiID,
		t.Type,
		t.Date.String(),
		t.Quantity,
		t.PricePerUnit.String(),
		t.TotalAmount.String(),
		t.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		t.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// UpdateTransaction writes back a full transaction row.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, t *model.Transaction) error {
	query := `
		UPDATE fii_transaction
		SET fii_id = ?, type = ?, date = ?, quantity = ?,
			price_per_unit = ?, total_amount = ?, updated_at = ?
		WHERE id = ? AND user_id = ? AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		t.FiiID,
		t.Type,
		t.Date.String(),
		t.Quantity,
		t.PricePerUnit.String(),
		t.TotalAmount.String(),
		t.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
		t.ID,
		t.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	return nil
}

// SoftDeleteTransaction tombstones a transaction. Tombstoned rows are
// excluded from holdings replay and from eligibility computation.
func (r *TransactionRepository) SoftDeleteTransaction(ctx context.Context, userID, id string, deletedAt time.Time) error {
	query := `
		UPDATE fii_transaction
		SET deleted_at = ?
		WHERE id = ? AND user_id = ? AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, deletedAt.UTC().Format("2006-01-02 15:04:05"), id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	return nil
}

// SumUnitsAt returns the total units bought and sold by the user in one FII
// up to and including the cutoff date. A transaction dated exactly on the
// cutoff counts on both sides of the ledger.
func (r *TransactionRepository) SumUnitsAt(userID, fiiID string, cutoff model.Date) (bought, sold int64, err error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN type = 'buy' THEN quantity ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'sell' THEN quantity ELSE 0 END), 0)
		FROM fii_transaction
		WHERE user_id = ? AND fii_id = ? AND deleted_at IS NULL AND date <= ?
	`

	err = r.db.QueryRow(query, userID, fiiID, cutoff.String()).Scan(&bought, &sold)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to sum transaction units: %w", err)
	}

	return bought, sold, nil
}

// GetTransactionsForFii retrieves every non-deleted transaction the user has
// in one FII, ordered by date. Used to replay positions for holdings.
func (r *TransactionRepository) GetTransactionsForFii(userID, fiiID string) ([]model.Transaction, error) {
	query := `
		SELECT t.id, t.user_id, t.fii_id, f.tag, t.type, t.date,
			t.quantity, t.price_per_unit, t.total_amount, t.created_at, t.updated_at
		FROM fii_transaction t
		JOIN fii f ON t.fii_id = f.id
		WHERE t.user_id = ? AND t.fii_id = ? AND t.deleted_at IS NULL
		ORDER BY t.date ASC, t.id ASC
	`

	rows, err := r.db.Query(query, userID, fiiID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fii_transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t.Transaction)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fii_transaction table: %w", err)
	}

	return transactions, nil
}

// GetHeldFiis returns the distinct non-deleted FIIs the user has transacted in,
// ordered by tag.
func (r *TransactionRepository) GetHeldFiis(userID string) ([]model.Fii, error) {
	query := `
		SELECT DISTINCT f.id, f.tag, f.name, f.sector, f.cut_day, f.created_at, f.updated_at
		FROM fii_transaction t
		JOIN fii f ON t.fii_id = f.id
		WHERE t.user_id = ? AND t.deleted_at IS NULL AND f.deleted_at IS NULL
		ORDER BY f.tag ASC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fii_transaction table: %w", err)
	}
	defer rows.Close()

	fiis := []model.Fii{}
	for rows.Next() {
		fii, err := scanFii(rows)
		if err != nil {
			return nil, err
		}
		fiis = append(fiis, fii)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fii_transaction table: %w", err)
	}

	return fiis, nil
}

func scanTransaction(row scanner) (model.TransactionResponse, error) {
	var t model.TransactionResponse
	var dateStr, priceStr, totalStr, createdAtStr, updatedAtStr string

	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.FiiID,
		&t.FiiTag,
		&t.Type,
		&dateStr,
		&t.Quantity,
		&priceStr,
		&totalStr,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.TransactionResponse{}, err
		}
		return model.TransactionResponse{}, fmt.Errorf("failed to scan fii_transaction table results: %w", err)
	}

	t.Date, err = ParseDate(dateStr)
	if err != nil {
		return model.TransactionResponse{}, err
	}

	price, err := ParseDecimal(priceStr)
	if err != nil {
		return model.TransactionResponse{}, err
	}
	t.PricePerUnit = model.NewAmount(price)

	total, err := ParseDecimal(totalStr)
	if err != nil {
		return model.TransactionResponse{}, err
	}
	t.TotalAmount = model.NewAmount(total)

	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.TransactionResponse{}, err
	}
	t.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return model.TransactionResponse{}, err
	}

	return t, nil
}
