package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/apperrors"
	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// GetAllTransactions retrieves every stored transaction sorted ascending by
// date. Same-date rows tie-break on rowid, which is insertion order; the
// engine's stable sort preserves it, so a same-day buy-then-sell replays in
// the order it was recorded.
func (r *TransactionRepository) GetAllTransactions() ([]model.Transaction, error) {
	query := `
		SELECT id, date, kind, asset, quantity, cost_basis_total, fair_market_value_total, venue, created_at
		FROM "transaction"
		ORDER BY date ASC, rowid ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transaction rows: %w", err)
	}

	return transactions, nil
}

// GetTransaction retrieves a single transaction by its ID.
func (r *TransactionRepository) GetTransaction(transactionID string) (model.Transaction, error) {
	query := `
		SELECT id, date, kind, asset, quantity, cost_basis_total, fair_market_value_total, venue, created_at
		FROM "transaction"
		WHERE id = ?
	`

	row := r.db.QueryRow(query, transactionID)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, err
	}
	return tx, nil
}

// InsertTransaction stores a new transaction record.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, tx *model.Transaction) error {
	query := `
		INSERT INTO "transaction" (id, date, kind, asset, quantity, cost_basis_total, fair_market_value_total, venue)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		tx.ID,
		tx.Date.Format("2006-01-02"),
		string(tx.Kind),
		tx.Asset,
		tx.Quantity.String(),
		tx.CostBasisTotal.String(),
		tx.FairMarketValueTotal.String(),
		tx.Venue,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// UpdateTransaction replaces the mutable fields of an existing transaction.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, tx *model.Transaction) error {
	query := `
		UPDATE "transaction"
		SET date = ?, kind = ?, asset = ?, quantity = ?, cost_basis_total = ?, fair_market_value_total = ?, venue = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		tx.Date.Format("2006-01-02"),
		string(tx.Kind),
		tx.Asset,
		tx.Quantity.String(),
		tx.CostBasisTotal.String(),
		tx.FairMarketValueTotal.String(),
		tx.Venue,
		tx.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// DeleteTransaction removes a transaction by ID.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM "transaction" WHERE id = ?`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// DistinctAssets returns the set of asset symbols present in the transaction
// table, sorted alphabetically. Used by the price refresher to know what to
// fetch.
func (r *TransactionRepository) DistinctAssets() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT asset FROM "transaction" ORDER BY asset ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct assets: %w", err)
	}
	defer rows.Close()

	var assets []string
	for rows.Next() {
		var asset string
		if err := rows.Scan(&asset); err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, asset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate asset rows: %w", err)
	}
	return assets, nil
}

// scanner abstracts sql.Row and sql.Rows for scanTransaction.
type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (model.Transaction, error) {
	var (
		tx                           model.Transaction
		dateStr, createdAtStr        string
		kindStr                      string
		quantityStr, costStr, fmvStr string
		venue                        sql.NullString
	)

	err := row.Scan(&tx.ID, &dateStr, &kindStr, &tx.Asset, &quantityStr, &costStr, &fmvStr, &venue, &createdAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Transaction{}, err
		}
		return model.Transaction{}, fmt.Errorf("failed to scan transaction row: %w", err)
	}

	tx.Kind = model.TransactionKind(kindStr)
	tx.Venue = venue.String

	if tx.Date, err = ParseTime(dateStr); err != nil {
		return model.Transaction{}, err
	}
	if tx.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
		return model.Transaction{}, err
	}
	if tx.Quantity, err = ParseDecimal(quantityStr); err != nil {
		return model.Transaction{}, err
	}
	if tx.CostBasisTotal, err = ParseDecimal(costStr); err != nil {
		return model.Transaction{}, err
	}
	if tx.FairMarketValueTotal, err = ParseDecimal(fmvStr); err != nil {
		return model.Transaction{}, err
	}

	return tx, nil
}

func parseTimestamp(str string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse timestamp: %q", str)
}
