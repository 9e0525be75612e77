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

// DividendFilter narrows dividend listings. Zero values mean "no filter".
type DividendFilter struct {
	FiiID     string
	StartDate *model.Date
	EndDate   *model.Date
	Skip      int
	Limit     int
}

// DividendWithFii pairs a dividend with its FII catalog entry, as fetched by
// the month query feeding the eligibility computation.
type DividendWithFii struct {
	Dividend model.Dividend
	Fii      model.Fii
}

// DividendRepository provides data access methods for the dividend table.
// All reads are scoped to a single owning user and exclude soft-deleted rows.
type DividendRepository struct {
	db *sql.DB
}

// NewDividendRepository creates a new DividendRepository with the provided database connection.
func NewDividendRepository(db *sql.DB) *DividendRepository {
	return &DividendRepository{db: db}
}

// GetDividends retrieves a user's dividends ordered by payment date descending,
// enriched with the FII tag.
func (r *DividendRepository) GetDividends(userID string, filter DividendFilter) ([]model.DividendResponse, error) {
	query := `
		SELECT d.id, d.user_id, d.fii_id, f.tag, d.payment_date, d.reference_date,
			d.com_date, d.amount_per_unit, d.created_at, d.updated_at
		FROM dividend d
		JOIN fii f ON d.fii_id = f.id
		WHERE d.user_id = ? AND d.deleted_at IS NULL
	`

	args := []any{userID}
	if filter.FiiID != "" {
		query += ` AND d.fii_id = ?`
		args = append(args, filter.FiiID)
	}
	if filter.StartDate != nil {
		query += ` AND d.payment_date >= ?`
		args = append(args, filter.StartDate.String())
	}
	if filter.EndDate != nil {
		query += ` AND d.payment_date <= ?`
		args = append(args, filter.EndDate.String())
	}
	query += ` ORDER BY d.payment_date DESC, d.id ASC LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, filter.Skip)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query dividend table: %w", err)
	}
	defer rows.Close()

	dividends := []model.DividendResponse{}
	for rows.Next() {
		d, err := scanDividend(rows)
		if err != nil {
			return nil, err
		}
		dividends = append(dividends, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dividend table: %w", err)
	}

	return dividends, nil
}

// GetDividend retrieves a single dividend owned by the user.
// Returns apperrors.ErrDividendNotFound if it does not exist or is deleted.
func (r *DividendRepository) GetDividend(userID, id string) (model.DividendResponse, error) {
	query := `
		SELECT d.id, d.user_id, d.fii_id, f.tag, d.payment_date, d.reference_date,
			d.com_date, d.amount_per_unit, d.created_at, d.updated_at
		FROM dividend d
		JOIN fii f ON d.fii_id = f.id
		WHERE d.id = ? AND d.user_id = ? AND d.deleted_at IS NULL
	`

	d, err := scanDividend(r.db.QueryRow(query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.DividendResponse{}, apperrors.ErrDividendNotFound
	}
	if err != nil {
		return model.DividendResponse{}, err
	}

	return d, nil
}

// GetDividendsForMonth retrieves every non-deleted dividend the user received
// in the given calendar month, joined with its non-deleted FII catalog entry.
// Rows come back ordered by FII tag, then payment date, then ID, so the
// aggregation downstream is deterministic.
func (r *DividendRepository) GetDividendsForMonth(userID string, year int, month time.Month) ([]DividendWithFii, error) {
	monthStart := model.NewDate(year, month, 1)
	nextMonthStart := model.NewDate(year, month, 1).AddDate(0, 1, 0)

	query := `
		SELECT d.id, d.user_id, d.fii_id, d.payment_date, d.reference_date,
			d.com_date, d.amount_per_unit, d.created_at, d.updated_at,
			f.id, f.tag, f.name, f.sector, f.cut_day, f.created_at, f.updated_at
		FROM dividend d
		JOIN fii f ON d.fii_id = f.id
		WHERE d.user_id = ?
			AND d.deleted_at IS NULL
			AND f.deleted_at IS NULL
			AND d.payment_date >= ?
			AND d.payment_date < ?
		ORDER BY f.tag ASC, d.payment_date ASC, d.id ASC
	`

	rows, err := r.db.Query(query, userID, monthStart.String(), model.DateOf(nextMonthStart).String())
	if err != nil {
		return nil, fmt.Errorf("failed to query dividend table: %w", err)
	}
	defer rows.Close()

	results := []DividendWithFii{}
	for rows.Next() {
		var d model.Dividend
		var fii model.Fii
		var paymentDateStr, amountStr, dCreatedStr, dUpdatedStr string
		var referenceDateStr, comDateStr sql.NullString
		var sector sql.NullString
		var cutDay sql.NullInt64
		var fCreatedStr, fUpdatedStr string

		err := rows.Scan(
			&d.ID,
			&d.UserID,
			&d.FiiID,
			&paymentDateStr,
			&referenceDateStr,
			&comDateStr,
			&amountStr,
			&dCreatedStr,
			&dUpdatedStr,
			&fii.ID,
			&fii.Tag,
			&fii.Name,
			&sector,
			&cutDay,
			&fCreatedStr,
			&fUpdatedStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dividend table results: %w", err)
		}

		d.PaymentDate, err = ParseDate(paymentDateStr)
		if err != nil {
			return nil, err
		}
		if referenceDateStr.Valid {
			refDate, err := ParseDate(referenceDateStr.String)
			if err != nil {
				return nil, err
			}
			d.ReferenceDate = &refDate
		}
		if comDateStr.Valid {
			comDate, err := ParseDate(comDateStr.String)
			if err != nil {
				return nil, err
			}
			d.ComDate = &comDate
		}

		amount, err := ParseDecimal(amountStr)
		if err != nil {
			return nil, err
		}
		d.AmountPerUnit = model.NewUnitAmount(amount)

		d.CreatedAt, err = ParseTime(dCreatedStr)
		if err != nil {
			return nil, err
		}
		d.UpdatedAt, err = ParseTime(dUpdatedStr)
		if err != nil {
			return nil, err
		}

		if sector.Valid {
			fii.Sector = &sector.String
		}
		if cutDay.Valid {
			day := int(cutDay.Int64)
			fii.CutDay = &day
		}
		fii.CreatedAt, err = ParseTime(fCreatedStr)
		if err != nil {
			return nil, err
		}
		fii.UpdatedAt, err = ParseTime(fUpdatedStr)
		if err != nil {
			return nil, err
		}

		results = append(results, DividendWithFii{Dividend: d, Fii: fii})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dividend table: %w", err)
	}

	return results, nil
}

// InsertDividend creates a new dividend row.
func (r *DividendRepository) InsertDividend(ctx context.Context, d *model.Dividend) error {
	query := `
		INSERT INTO dividend (id, user_id, fii_id, payment_date, reference_date,
			com_date, amount_per_unit, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.UserID,
		d.FiiID,
		d.PaymentDate.String(),
		dateArg(d.ReferenceDate),
		dateArg(d.ComDate),
		d.AmountPerUnit.String(),
		d.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		d.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert dividend: %w", err)
	}

	return nil
}

// UpdateDividend writes back a full dividend row.
func (r *DividendRepository) UpdateDividend(ctx context.Context, d *model.Dividend) error {
	query := `
		UPDATE dividend
		SET fii_id = ?, payment_date = ?, reference_date = ?, com_date = ?,
			amount_per_unit = ?, updated_at = ?
		WHERE id = ? AND user_id = ? AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		d.FiiID,
		d.PaymentDate.String(),
		dateArg(d.ReferenceDate),
		dateArg(d.ComDate),
		d.AmountPerUnit.String(),
		d.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
		d.ID,
		d.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update dividend: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update dividend: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrDividendNotFound
	}

	return nil
}

// SoftDeleteDividend tombstones a dividend record.
func (r *DividendRepository) SoftDeleteDividend(ctx context.Context, userID, id string, deletedAt time.Time) error {
	query := `
		UPDATE dividend
		SET deleted_at = ?
		WHERE id = ? AND user_id = ? AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, deletedAt.UTC().Format("2006-01-02 15:04:05"), id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete dividend: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete dividend: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrDividendNotFound
	}

	return nil
}

// dateArg renders an optional date for a nullable DATE column.
func dateArg(d *model.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func scanDividend(row scanner) (model.DividendResponse, error) {
	var d model.DividendResponse
	var paymentDateStr, amountStr, createdAtStr, updatedAtStr string
	var referenceDateStr, comDateStr sql.NullString

	err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.FiiID,
		&d.FiiTag,
		&paymentDateStr,
		&referenceDateStr,
		&comDateStr,
		&amountStr,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.DividendResponse{}, err
		}
		return model.DividendResponse{}, fmt.Errorf("failed to scan dividend table results: %w", err)
	}

	d.PaymentDate, err = ParseDate(paymentDateStr)
	if err != nil {
		return model.DividendResponse{}, err
	}
	if referenceDateStr.Valid {
		refDate, err := ParseDate(referenceDateStr.String)
		if err != nil {
			return model.DividendResponse{}, err
		}
		d.ReferenceDate = &refDate
	}
	if comDateStr.Valid {
		comDate, err := ParseDate(comDateStr.String)
		if err != nil {
			return model.DividendResponse{}, err
		}
		d.ComDate = &comDate
	}

	amount, err := ParseDecimal(amountStr)
	if err != nil {
		return model.DividendResponse{}, err
	}
	d.AmountPerUnit = model.NewUnitAmount(amount)

	d.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.DividendResponse{}, err
	}
	d.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return model.DividendResponse{}, err
	}

	return d, nil
}
