package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/apperrors"
)

// PriceRepository provides data access methods for the asset_price cache.
type PriceRepository struct {
	db *sql.DB
}

// NewPriceRepository creates a new PriceRepository with the provided database connection.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// UpsertPrice stores or replaces the cached current price for an asset.
func (r *PriceRepository) UpsertPrice(asset string, price decimal.Decimal) error {
	query := `
		INSERT INTO asset_price (asset, price, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(asset) DO UPDATE SET price = excluded.price, updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.Exec(query, asset, price.String()); err != nil {
		return fmt.Errorf("failed to upsert price for %s: %w", asset, err)
	}
	return nil
}

// GetPrice returns the cached price for an asset, or ErrPriceNotFound.
func (r *PriceRepository) GetPrice(asset string) (decimal.Decimal, error) {
	var priceStr string
	err := r.db.QueryRow(`SELECT price FROM asset_price WHERE asset = ?`, asset).Scan(&priceStr)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrPriceNotFound, asset)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to query price for %s: %w", asset, err)
	}
	return ParseDecimal(priceStr)
}
