package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrUserNotFound indicates that a user with the given ID or email does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrFiiNotFound indicates that a FII with the given ID does not exist.
	ErrFiiNotFound = errors.New("fii not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrDividendNotFound indicates that a dividend record with the given ID does not exist.
	ErrDividendNotFound = errors.New("dividend not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrEmailTaken indicates that the email address is already registered.
	ErrEmailTaken = errors.New("email already registered")

	// ErrTagTaken indicates that a FII with the same tag already exists.
	ErrTagTaken = errors.New("fii tag already registered")

	// ErrInvalidMonth indicates a month parameter outside 1-12.
	ErrInvalidMonth = errors.New("month must be between 1 and 12")

	// ErrInvalidYear indicates an unparseable or out-of-range year parameter.
	ErrInvalidYear = errors.New("invalid year")

	// ErrWeakPassword indicates a password outside the allowed length range.
	ErrWeakPassword = errors.New("password does not meet requirements")
)

// Authentication errors.
var (
	// ErrInvalidCredentials indicates a failed email/password login attempt.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken indicates a malformed, tampered or unknown token.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired indicates an access or refresh token past its expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenRevoked indicates a refresh token that was explicitly revoked.
	ErrTokenRevoked = errors.New("token revoked")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	// ErrFailedToRetrieveFiis indicates the FII catalog could not be read.
	ErrFailedToRetrieveFiis = errors.New("failed to retrieve fiis")

	// ErrFailedToRetrieveTransactions indicates the transaction ledger could not be read.
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")

	// ErrFailedToRetrieveDividends indicates dividend records could not be read.
	ErrFailedToRetrieveDividends = errors.New("failed to retrieve dividends")

	// ErrFailedToGetMonthlySummary indicates the monthly dividend aggregation failed.
	ErrFailedToGetMonthlySummary = errors.New("failed to get monthly dividend summary")

	// ErrFailedToGetHoldings indicates current holdings could not be computed.
	ErrFailedToGetHoldings = errors.New("failed to get holdings")
)
