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

// FiiRepository provides data access methods for the fii catalog table.
// Soft-deleted rows are excluded from every read.
type FiiRepository struct {
	db *sql.DB
}

// NewFiiRepository creates a new FiiRepository with the provided database connection.
func NewFiiRepository(db *sql.DB) *FiiRepository {
	return &FiiRepository{db: db}
}

const fiiColumns = `id, tag, name, sector, cut_day, created_at, updated_at`

// GetFiis retrieves catalog entries ordered by tag, optionally filtered by sector.
func (r *FiiRepository) GetFiis(sector string, skip, limit int) ([]model.Fii, error) {
	query := `
		SELECT ` + fiiColumns + `
		FROM fii
		WHERE deleted_at IS NULL
	`

	var args []any
	if sector != "" {
		query += ` AND sector = ?`
		args = append(args, sector)
	}
	query += ` ORDER BY tag ASC LIMIT ? OFFSET ?`
	args = append(args, limit, skip)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query fii table: %w", err)
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
		return nil, fmt.Errorf("error iterating fii table: %w", err)
	}

	return fiis, nil
}

// GetFii retrieves a single catalog entry by ID.
// Returns apperrors.ErrFiiNotFound if the entry does not exist or is deleted.
func (r *FiiRepository) GetFii(id string) (model.Fii, error) {
	query := `
		SELECT ` + fiiColumns + `
		FROM fii
		WHERE id = ? AND deleted_at IS NULL
	`

	fii, err := scanFii(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Fii{}, apperrors.ErrFiiNotFound
	}
	if err != nil {
		return model.Fii{}, err
	}

	return fii, nil
}

// GetFiiByTag retrieves a single catalog entry by its ticker tag.
// Returns apperrors.ErrFiiNotFound if the entry does not exist or is deleted.
func (r *FiiRepository) GetFiiByTag(tag string) (model.Fii, error) {
	query := `
		SELECT ` + fiiColumns + `
		FROM fii
		WHERE tag = ? AND deleted_at IS NULL
	`

	fii, err := scanFii(r.db.QueryRow(query, tag))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Fii{}, apperrors.ErrFiiNotFound
	}
	if err != nil {
		return model.Fii{}, err
	}

	return fii, nil
}

// InsertFii creates a new catalog entry.
func (r *FiiRepository) InsertFii(ctx context.Context, fii *model.Fii) error {
	query := `
		INSERT INTO fii (id, tag, name, sector, cut_day, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		fii.ID,
		fii.Tag,
		fii.Name,
		fii.Sector,
		fii.CutDay,
		fii.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		fii.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert fii: %w", err)
	}

	return nil
}

// UpdateFii writes back a full catalog row.
func (r *FiiRepository) UpdateFii(ctx context.Context, fii *model.Fii) error {
	query := `
		UPDATE fii
		SET tag = ?, name = ?, sector = ?, cut_day = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		fii.Tag,
		fii.Name,
		fii.Sector,
		fii.CutDay,
		fii.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
		fii.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update fii: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update fii: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrFiiNotFound
	}

	return nil
}

// SoftDeleteFii tombstones a catalog entry. Its dividends disappear from
// monthly summaries until restored by hand.
func (r *FiiRepository) SoftDeleteFii(ctx context.Context, id string, deletedAt time.Time) error {
	query := `
		UPDATE fii
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, deletedAt.UTC().Format("2006-01-02 15:04:05"), id)
	if err != nil {
		return fmt.Errorf("failed to delete fii: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete fii: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrFiiNotFound
	}

	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type scanner interface {
	Scan(dest ...any) error
}

func scanFii(row scanner) (model.Fii, error) {
	var fii model.Fii
	var sector sql.NullString
	var cutDay sql.NullInt64
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&fii.ID,
		&fii.Tag,
		&fii.Name,
		&sector,
		&cutDay,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Fii{}, err
		}
		return model.Fii{}, fmt.Errorf("failed to scan fii table results: %w", err)
	}

	if sector.Valid {
		fii.Sector = &sector.String
	}
	if cutDay.Valid {
		day := int(cutDay.Int64)
		fii.CutDay = &day
	}

	fii.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Fii{}, err
	}
	fii.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return model.Fii{}, err
	}

	return fii, nil
}
