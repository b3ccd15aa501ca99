package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/model"
)

// TransactionBuilder provides a fluent interface for creating test transactions.
//
// Example usage:
//
//	// Simple acquisition with defaults
//	tx := testutil.NewTransaction().Build(t, db)
//
//	// Customized disposal
//	tx := testutil.NewTransaction().
//	    Disposal().
//	    WithAsset("ETH").
//	    WithDate("2024-06-01").
//	    WithQuantity("2").
//	    WithFairMarketValue("5000").
//	    Build(t, db)
type TransactionBuilder struct {
	ID              string
	Date            string
	Kind            model.TransactionKind
	Asset           string
	Quantity        string
	CostBasis       string
	FairMarketValue string
	Venue           string
}

// NewTransaction creates a TransactionBuilder with sensible defaults: a
// purchase of one BTC for 20000.
func NewTransaction() *TransactionBuilder {
	return &TransactionBuilder{
		ID:              MakeID(),
		Date:            "2024-01-15",
		Kind:            model.KindAcquire,
		Asset:           "BTC",
		Quantity:        "1",
		CostBasis:       "20000",
		FairMarketValue: "0",
		Venue:           "test-exchange",
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// WithDate sets the transaction date in YYYY-MM-DD format.
func (b *TransactionBuilder) WithDate(date string) *TransactionBuilder {
	b.Date = date
	return b
}

// WithKind sets a custom kind.
func (b *TransactionBuilder) WithKind(kind model.TransactionKind) *TransactionBuilder {
	b.Kind = kind
	return b
}

// WithAsset sets a custom asset symbol.
func (b *TransactionBuilder) WithAsset(asset string) *TransactionBuilder {
	b.Asset = asset
	return b
}

// WithQuantity sets a custom quantity.
func (b *TransactionBuilder) WithQuantity(quantity string) *TransactionBuilder {
	b.Quantity = quantity
	return b
}

// WithCostBasis sets the total cost basis.
func (b *TransactionBuilder) WithCostBasis(costBasis string) *TransactionBuilder {
	b.CostBasis = costBasis
	return b
}

// WithFairMarketValue sets the total fair market value.
func (b *TransactionBuilder) WithFairMarketValue(fmv string) *TransactionBuilder {
	b.FairMarketValue = fmv
	return b
}

// WithVenue sets a custom venue.
func (b *TransactionBuilder) WithVenue(venue string) *TransactionBuilder {
	b.Venue = venue
	return b
}

// Disposal marks the transaction as a disposal.
func (b *TransactionBuilder) Disposal() *TransactionBuilder {
	b.Kind = model.KindDispose
	b.CostBasis = "0"
	return b
}

// Income marks the transaction as staking or mining income.
func (b *TransactionBuilder) Income() *TransactionBuilder {
	b.Kind = model.KindIncome
	b.CostBasis = "0"
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO "transaction" (id, date, kind, asset, quantity, cost_basis_total, fair_market_value_total, venue)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Date, string(b.Kind), b.Asset, b.Quantity, b.CostBasis, b.FairMarketValue, b.Venue)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	date, err := time.Parse("2006-01-02", b.Date)
	if err != nil {
		t.Fatalf("Invalid test transaction date: %v", err)
	}

	return model.Transaction{
		ID:                   b.ID,
		Date:                 date,
		Kind:                 b.Kind,
		Asset:                b.Asset,
		Quantity:             decimal.RequireFromString(b.Quantity),
		CostBasisTotal:       decimal.RequireFromString(b.CostBasis),
		FairMarketValueTotal: decimal.RequireFromString(b.FairMarketValue),
		Venue:                b.Venue,
	}
}

// InsertPrice stores a cached asset price for testing.
func InsertPrice(t *testing.T, db *sql.DB, asset, price string) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO asset_price (asset, price, currency) VALUES (?, ?, 'USD')`,
		asset, price,
	)
	if err != nil {
		t.Fatalf("Failed to insert test price: %v", err)
	}
}
