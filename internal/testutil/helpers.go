package testutil

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/config"
	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/engine"
	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/repository"
	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/service"
)

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewTransactionService(
		transactionRepo,
	)
}

// NewTestTaxService wires a TaxService over the test database. The price
// lookup reads from the asset_price table, so tests control prices through
// InsertPrice.
func NewTestTaxService(t *testing.T, db *sql.DB) *service.TaxService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)
	priceRepo := repository.NewPriceRepository(db)

	prices := engine.PriceLookup(func(asset string) (decimal.Decimal, error) {
		return priceRepo.GetPrice(asset)
	})

	return service.NewTaxService(
		transactionRepo,
		prices,
		TestTaxConfig(),
	)
}

// TestTaxConfig returns the default rates used across tests.
func TestTaxConfig() config.TaxConfig {
	return config.TaxConfig{
		ShortTermRate:      decimal.RequireFromString("0.24"),
		LongTermRate:       decimal.RequireFromString("0.15"),
		HarvestThreshold:   decimal.RequireFromString("100"),
		LongTermWindowDays: 30,
	}
}

// MakeID generates a unique UUID string for testing.
func MakeID() string {
	return uuid.New().String()
}
