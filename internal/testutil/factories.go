package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fiitrack/fii-portfolio-backend/internal/model"
)

// UserBuilder provides a fluent interface for creating test users.
//
// Example usage:
//
//	// Simple creation with defaults
//	user := testutil.NewUser().Build(t, db)
//
//	// Customized user
//	user := testutil.NewUser().
//	    WithEmail("ana@example.com").
//	    Build(t, db)
type UserBuilder struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	IsSuperuser  bool
}

// NewUser creates a UserBuilder with sensible defaults.
func NewUser() *UserBuilder {
	return &UserBuilder{
		ID:           MakeID(),
		Email:        MakeEmail("user"),
		Name:         "Test User",
		PasswordHash: "$2a$10$testhashtesthashtesthashtesthashtesthashtesthashtest",
		IsSuperuser:  false,
	}
}

// WithID sets a custom ID.
func (b *UserBuilder) WithID(id string) *UserBuilder {
	b.ID = id
	return b
}

// WithEmail sets a custom email.
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.Email = email
	return b
}

// WithPasswordHash sets a real bcrypt hash, for login tests.
func (b *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	b.PasswordHash = hash
	return b
}

// Build creates the user in the database and returns it.
func (b *UserBuilder) Build(t *testing.T, db *sql.DB) model.User {
	t.Helper()

	query := `
		INSERT INTO user (id, email, name, password_hash, is_superuser)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Email, b.Name, b.PasswordHash, b.IsSuperuser)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return model.User{
		ID:           b.ID,
		Email:        b.Email,
		Name:         b.Name,
		PasswordHash: b.PasswordHash,
		IsSuperuser:  b.IsSuperuser,
	}
}

// CreateUser creates a user with default values.
func CreateUser(t *testing.T, db *sql.DB) model.User {
	t.Helper()
	return NewUser().Build(t, db)
}

// FiiBuilder provides a fluent interface for creating test catalog entries.
//
// Example usage:
//
//	fii := testutil.NewFii().
//	    WithTag("ABCD11").
//	    WithCutDay(15).
//	    Build(t, db)
type FiiBuilder struct {
	ID     string
	Tag    string
	Name   string
	Sector *string
	CutDay *int
}

// NewFii creates a FiiBuilder with sensible defaults. The default entry has
// no cut day, so its dividends yield zero eligible units.
func NewFii() *FiiBuilder {
	return &FiiBuilder{
		ID:   MakeID(),
		Tag:  MakeTag("TST"),
		Name: "Test FII",
	}
}

// WithID sets a custom ID.
func (b *FiiBuilder) WithID(id string) *FiiBuilder {
	b.ID = id
	return b
}

// WithTag sets a custom tag.
func (b *FiiBuilder) WithTag(tag string) *FiiBuilder {
	b.Tag = tag
	return b
}

// WithName sets a custom name.
func (b *FiiBuilder) WithName(name string) *FiiBuilder {
	b.Name = name
	return b
}

// WithSector sets the sector.
func (b *FiiBuilder) WithSector(sector string) *FiiBuilder {
	b.Sector = &sector
	return b
}

// WithCutDay sets the cut-day policy.
func (b *FiiBuilder) WithCutDay(day int) *FiiBuilder {
	b.CutDay = &day
	return b
}

// Build creates the catalog entry in the database and returns it.
func (b *FiiBuilder) Build(t *testing.T, db *sql.DB) model.Fii {
	t.Helper()

	query := `
		INSERT INTO fii (id, tag, name, sector, cut_day)
		VALUES (?, ?, ?, ?, ?)
	`

	var sector, cutDay any
	if b.Sector != nil {
		sector = *b.Sector
	}
	if b.CutDay != nil {
		cutDay = *b.CutDay
	}

	_, err := db.Exec(query, b.ID, b.Tag, b.Name, sector, cutDay)
	if err != nil {
		t.Fatalf("Failed to create test fii: %v", err)
	}

	return model.Fii{
		ID:     b.ID,
		Tag:    b.Tag,
		Name:   b.Name,
		Sector: b.Sector,
		CutDay: b.CutDay,
	}
}

// CreateFii creates a catalog entry with the given tag and cut day.
func CreateFii(t *testing.T, db *sql.DB, tag string, cutDay int) model.Fii {
	t.Helper()
	return NewFii().WithTag(tag).WithCutDay(cutDay).Build(t, db)
}

// TransactionBuilder provides a fluent interface for creating transactions
type TransactionBuilder struct {
	ID           string
	UserID       string
	FiiID        string
	Type         string
	Date         model.Date
	Quantity     int64
	PricePerUnit string
	DeletedAt    *time.Time
}

// NewTransaction creates a TransactionBuilder with defaults
func NewTransaction(userID, fiiID string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:           MakeID(),
		UserID:       userID,
		FiiID:        fiiID,
		Type:         "buy",
		Date:         model.NewDate(2024, time.January, 10),
		Quantity:     100,
		PricePerUnit: "10.00",
	}
}

// WithID sets a custom ID
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// WithType sets the transaction type
func (b *TransactionBuilder) WithType(txType string) *TransactionBuilder {
	b.Type = txType
	return b
}

// WithDate sets the transaction date from a YYYY-MM-DD string
func (b *TransactionBuilder) WithDate(t *testing.T, date string) *TransactionBuilder {
	t.Helper()
	parsed, err := model.ParseDate(date)
	if err != nil {
		t.Fatalf("Failed to parse transaction date %q: %v", date, err)
	}
	b.Date = parsed
	return b
}

// WithQuantity sets the number of units
func (b *TransactionBuilder) WithQuantity(quantity int64) *TransactionBuilder {
	b.Quantity = quantity
	return b
}

// WithPrice sets the price per unit
func (b *TransactionBuilder) WithPrice(price string) *TransactionBuilder {
	b.PricePerUnit = price
	return b
}

// Deleted marks the transaction as soft deleted.
func (b *TransactionBuilder) Deleted() *TransactionBuilder {
	now := time.Now()
	b.DeletedAt = &now
	return b
}

// Build creates the transaction in the database
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	price, err := decimal.NewFromString(b.PricePerUnit)
	if err != nil {
		t.Fatalf("Failed to parse price %q: %v", b.PricePerUnit, err)
	}
	total := price.Mul(decimal.NewFromInt(b.Quantity)).Round(2)

	query := `
		INSERT INTO fii_transaction (id, user_id, fii_id, type, date, quantity, price_per_unit, total_amount, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var deletedAt any
	if b.DeletedAt != nil {
		deletedAt = b.DeletedAt.UTC().Format("2006-01-02 15:04:05")
	}

	_, err = db.Exec(query,
		b.ID, b.UserID, b.FiiID, b.Type,
		b.Date.String(), b.Quantity,
		price.StringFixed(2), total.StringFixed(2),
		deletedAt)
	if err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}

	return model.Transaction{
		ID:           b.ID,
		UserID:       b.UserID,
		FiiID:        b.FiiID,
		Type:         b.Type,
		Date:         b.Date,
		Quantity:     b.Quantity,
		PricePerUnit: model.NewAmount(price),
		TotalAmount:  model.NewAmount(total),
	}
}

// DividendBuilder provides a fluent interface for creating dividend records
type DividendBuilder struct {
	ID            string
	UserID        string
	FiiID         string
	PaymentDate   model.Date
	ReferenceDate *model.Date
	AmountPerUnit string
	DeletedAt     *time.Time
}

// NewDividend creates a DividendBuilder with defaults
func NewDividend(userID, fiiID string) *DividendBuilder {
	return &DividendBuilder{
		ID:            MakeID(),
		UserID:        userID,
		FiiID:         fiiID,
		PaymentDate:   model.NewDate(2024, time.January, 25),
		AmountPerUnit: "0.50",
	}
}

// WithID sets a custom ID
func (b *DividendBuilder) WithID(id string) *DividendBuilder {
	b.ID = id
	return b
}

// WithPaymentDate sets the payment date from a YYYY-MM-DD string
func (b *DividendBuilder) WithPaymentDate(t *testing.T, date string) *DividendBuilder {
	t.Helper()
	parsed, err := model.ParseDate(date)
	if err != nil {
		t.Fatalf("Failed to parse payment date %q: %v", date, err)
	}
	b.PaymentDate = parsed
	return b
}

// WithAmountPerUnit sets the per-unit amount
func (b *DividendBuilder) WithAmountPerUnit(amount string) *DividendBuilder {
	b.AmountPerUnit = amount
	return b
}

// Deleted marks the dividend as soft deleted.
func (b *DividendBuilder) Deleted() *DividendBuilder {
	now := time.Now()
	b.DeletedAt = &now
	return b
}

// Build creates the dividend in the database
func (b *DividendBuilder) Build(t *testing.T, db *sql.DB) model.Dividend {
	t.Helper()

	amount, err := decimal.NewFromString(b.AmountPerUnit)
	if err != nil {
		t.Fatalf("Failed to parse amount %q: %v", b.AmountPerUnit, err)
	}

	query := `
		INSERT INTO dividend (id, user_id, fii_id, payment_date, reference_date, amount_per_unit, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	var referenceDate any
	if b.ReferenceDate != nil {
		referenceDate = b.ReferenceDate.String()
	}

	var deletedAt any
	if b.DeletedAt != nil {
		deletedAt = b.DeletedAt.UTC().Format("2006-01-02 15:04:05")
	}

	_, err = db.Exec(query,
		b.ID, b.UserID, b.FiiID,
		b.PaymentDate.String(), referenceDate,
		amount.StringFixed(4), deletedAt)
	if err != nil {
		t.Fatalf("Failed to create dividend: %v", err)
	}

	return model.Dividend{
		ID:            b.ID,
		UserID:        b.UserID,
		FiiID:         b.FiiID,
		PaymentDate:   b.PaymentDate,
		ReferenceDate: b.ReferenceDate,
		AmountPerUnit: model.NewUnitAmount(amount),
	}
}
