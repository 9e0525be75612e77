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

// RefreshTokenRepository provides data access methods for the refresh_token table.
type RefreshTokenRepository struct {
	db *sql.DB
}

// NewRefreshTokenRepository creates a new RefreshTokenRepository with the provided database connection.
func NewRefreshTokenRepository(db *sql.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// InsertToken stores a new refresh token hash.
func (r *RefreshTokenRepository) InsertToken(ctx context.Context, token *model.RefreshToken) error {
	query := `
		INSERT INTO refresh_token (id, user_id, token_hash, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		token.ID,
		token.UserID,
		token.TokenHash,
		token.ExpiresAt.UTC().Format("2006-01-02 15:04:05"),
		token.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert refresh token: %w", err)
	}

	return nil
}

// GetByHash retrieves a refresh token by its SHA-256 hash.
// Returns apperrors.ErrInvalidToken if no such token exists.
func (r *RefreshTokenRepository) GetByHash(tokenHash string) (model.RefreshToken, error) {
	query := `
		SELECT id, user_id, token_hash, expires_at, revoked_at, created_at
		FROM refresh_token
		WHERE token_hash = ?
	`

	var t model.RefreshToken
	var expiresAtStr, createdAtStr string
	var revokedAtStr sql.NullString

	err := r.db.QueryRow(query, tokenHash).Scan(
		&t.ID,
		&t.UserID,
		&t.TokenHash,
		&expiresAtStr,
		&revokedAtStr,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RefreshToken{}, apperrors.ErrInvalidToken
	}
	if err != nil {
		return model.RefreshToken{}, fmt.Errorf("failed to scan refresh_token table results: %w", err)
	}

	t.ExpiresAt, err = ParseTime(expiresAtStr)
	if err != nil {
		return model.RefreshToken{}, err
	}
	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.RefreshToken{}, err
	}
	if revokedAtStr.Valid {
		revokedAt, err := ParseTime(revokedAtStr.String)
		if err != nil {
			return model.RefreshToken{}, err
		}
		t.RevokedAt = &revokedAt
	}

	return t, nil
}

// RevokeToken marks a refresh token as revoked.
func (r *RefreshTokenRepository) RevokeToken(ctx context.Context, tokenHash string, revokedAt time.Time) error {
	query := `
		UPDATE refresh_token
		SET revoked_at = ?
		WHERE token_hash = ? AND revoked_at IS NULL
	`

	_, err := r.db.ExecContext(ctx, query, revokedAt.UTC().Format("2006-01-02 15:04:05"), tokenHash)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}

// PurgeExpired deletes refresh tokens that expired or were revoked before the cutoff.
// Returns the number of rows removed.
func (r *RefreshTokenRepository) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM refresh_token
		WHERE expires_at < ? OR revoked_at IS NOT NULL AND revoked_at < ?
	`

	cutoffStr := cutoff.UTC().Format("2006-01-02 15:04:05")
	result, err := r.db.ExecContext(ctx, query, cutoffStr, cutoffStr)
	if err != nil {
		return 0, fmt.Errorf("failed to purge refresh tokens: %w", err)
	}

	return result.RowsAffected()
}
