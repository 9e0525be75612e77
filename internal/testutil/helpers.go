package testutil

import (
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fiitrack/fii-portfolio-backend/internal/auth"
	"github.com/fiitrack/fii-portfolio-backend/internal/repository"
	"github.com/fiitrack/fii-portfolio-backend/internal/service"
)

func NewTestFiiService(t *testing.T, db *sql.DB) *service.FiiService {
	t.Helper()

	fiiRepo := repository.NewFiiRepository(db)

	return service.NewFiiService(fiiRepo)
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)
	fiiRepo := repository.NewFiiRepository(db)

	return service.NewTransactionService(
		transactionRepo,
		fiiRepo,
	)
}

func NewTestDividendService(t *testing.T, db *sql.DB) *service.DividendService {
	t.Helper()

	dividendRepo := repository.NewDividendRepository(db)
	fiiRepo := repository.NewFiiRepository(db)
	transactionService := NewTestTransactionService(t, db)

	return service.NewDividendService(
		dividendRepo,
		fiiRepo,
		transactionService,
	)
}

func NewTestHoldingsService(t *testing.T, db *sql.DB) *service.HoldingsService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewHoldingsService(transactionRepo)
}

func NewTestAuthService(t *testing.T, db *sql.DB) *service.AuthService {
	t.Helper()

	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	jwtManager := NewTestJWTManager(t)
	// Minimum bcrypt cost keeps the hashing fast in tests
	passwordManager := auth.NewPasswordManager(4)

	return service.NewAuthService(
		userRepo,
		refreshTokenRepo,
		jwtManager,
		passwordManager,
	)
}

func NewTestJWTManager(t *testing.T) *auth.JWTManager {
	t.Helper()

	return auth.NewJWTManager("test-secret-not-for-production", 15*time.Minute, 24*time.Hour)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeTag generates a FII ticker tag for testing.
//
// Example usage:
//
//	tag := testutil.MakeTag("HGL")
//	// Returns: "HGLG11" style tag with random letters
func MakeTag(base string) string {
	if base == "" {
		base = "TST"
	}
	return base + randomAlphanumeric(2) + "11"
}

// MakeEmail generates a unique email address for testing.
//
// Example usage:
//
//	email := testutil.MakeEmail("ana")
//	// Returns: "ana.A1B2C3@example.com"
func MakeEmail(base string) string {
	if base == "" {
		base = "user"
	}
	return base + "." + randomAlphanumeric(6) + "@example.com"
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
