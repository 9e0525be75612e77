package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fiitrack/fii-portfolio-backend/internal/apperrors"
	"github.com/fiitrack/fii-portfolio-backend/internal/model"
)

// UserRepository provides data access methods for the user table.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository with the provided database connection.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// InsertUser creates a new user row.
func (r *UserRepository) InsertUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO user (id, email, name, password_hash, is_superuser, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.IsSuperuser,
		user.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		user.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperrors.ErrEmailTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByEmail retrieves a user by email address.
// Returns apperrors.ErrUserNotFound if no such user exists.
func (r *UserRepository) GetUserByEmail(email string) (model.User, error) {
	return r.getUser(`WHERE email = ?`, email)
}

// GetUserByID retrieves a user by primary key.
// Returns apperrors.ErrUserNotFound if no such user exists.
func (r *UserRepository) GetUserByID(id string) (model.User, error) {
	return r.getUser(`WHERE id = ?`, id)
}

func (r *UserRepository) getUser(where string, arg any) (model.User, error) {
	query := `
		SELECT id, email, name, password_hash, is_superuser, created_at, updated_at
		FROM user
	` + where

	var u model.User
	var createdAtStr, updatedAtStr string

	err := r.db.QueryRow(query, arg).Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&u.IsSuperuser,
		&createdAtStr,
		&updatedAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to scan user table results: %w", err)
	}

	u.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.User{}, err
	}
	u.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return model.User{}, err
	}

	return u, nil
}
