package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fiitrack/fii-portfolio-backend/internal/api/request"
	"github.com/fiitrack/fii-portfolio-backend/internal/apperrors"
	"github.com/fiitrack/fii-portfolio-backend/internal/auth"
	"github.com/fiitrack/fii-portfolio-backend/internal/model"
	"github.com/fiitrack/fii-portfolio-backend/internal/repository"
)

// AuthService handles registration, login and the refresh token lifecycle.
type AuthService struct {
	userRepo         *repository.UserRepository
	refreshTokenRepo *repository.RefreshTokenRepository
	jwtManager       *auth.JWTManager
	passwordManager  *auth.PasswordManager
}

// NewAuthService creates a new AuthService with the provided dependencies.
func NewAuthService(
	userRepo *repository.UserRepository,
	refreshTokenRepo *repository.RefreshTokenRepository,
	jwtManager *auth.JWTManager,
	passwordManager *auth.PasswordManager,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		jwtManager:       jwtManager,
		passwordManager:  passwordManager,
	}
}

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, req request.RegisterRequest) (*model.User, error) {
	if err := s.passwordManager.ValidatePasswordStrength(req.Password); err != nil {
		return nil, err
	}

	hash, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         req.Name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.InsertUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and issues a token pair. The refresh token is
// stored hashed; the plaintext only ever travels in the response.
func (s *AuthService) Login(ctx context.Context, req request.LoginRequest) (*auth.TokenPair, error) {
	user, err := s.userRepo.GetUserByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.passwordManager.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokenPair(ctx, user)
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued. Expired or revoked tokens are rejected.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	tokenHash := auth.HashRefreshToken(refreshToken)

	stored, err := s.refreshTokenRepo.GetByHash(tokenHash)
	if err != nil {
		return nil, err
	}

	if stored.RevokedAt != nil {
		return nil, apperrors.ErrTokenRevoked
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.GetUserByID(stored.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.refreshTokenRepo.RevokeToken(ctx, tokenHash, time.Now()); err != nil {
		return nil, err
	}

	return s.issueTokenPair(ctx, user)
}

// Logout revokes the presented refresh token. Unknown tokens are rejected
// with the same error as malformed ones.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	tokenHash := auth.HashRefreshToken(refreshToken)

	if _, err := s.refreshTokenRepo.GetByHash(tokenHash); err != nil {
		return err
	}

	return s.refreshTokenRepo.RevokeToken(ctx, tokenHash, time.Now())
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id string) (model.User, error) {
	return s.userRepo.GetUserByID(id)
}

// PurgeExpiredTokens removes refresh tokens that expired or were revoked.
// Runs from the nightly maintenance job.
func (s *AuthService) PurgeExpiredTokens(ctx context.Context) error {
	removed, err := s.refreshTokenRepo.PurgeExpired(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("failed to purge expired refresh tokens: %w", err)
	}

	if removed > 0 {
		log.Printf("Purged %d expired refresh tokens", removed)
	}

	return nil
}

func (s *AuthService) issueTokenPair(ctx context.Context, user model.User) (*auth.TokenPair, error) {
	pair, err := s.jwtManager.GenerateTokenPair(user.ID, user.Email, user.IsSuperuser)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	stored := &model.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		TokenHash: auth.HashRefreshToken(pair.RefreshToken),
		ExpiresAt: now.Add(s.jwtManager.RefreshTokenDuration()),
		CreatedAt: now,
	}

	if err := s.refreshTokenRepo.InsertToken(ctx, stored); err != nil {
		return nil, err
	}

	return pair, nil
}
