package engine

import (
	"sort"

	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/apperrors"
	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/model"
)

// normalize validates the input transactions and returns a copy sorted
// ascending by date. The sort is stable: transactions with the same date
// keep their input order, so acquisition/disposal ordering is deterministic.
// Validation failures identify the offending record and never silently drop
// it.
func normalize(transactions []model.Transaction) ([]model.Transaction, error) {
	for _, tx := range transactions {
		if err := validate(tx); err != nil {
			return nil, err
		}
	}

	sorted := make([]model.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted, nil
}

func validate(tx model.Transaction) error {
	malformed := func(reason string) error {
		return &apperrors.MalformedTransactionError{TransactionID: tx.ID, Reason: reason}
	}

	if tx.Date.IsZero() {
		return malformed("date is required")
	}
	if !model.ValidKinds[tx.Kind] {
		return malformed("unrecognized kind " + string(tx.Kind))
	}
	if tx.Asset == "" {
		return malformed("asset is required")
	}
	if !tx.Quantity.IsPositive() {
		return malformed("quantity must be positive")
	}
	if tx.CostBasisTotal.IsNegative() {
		return malformed("cost basis cannot be negative")
	}
	if tx.FairMarketValueTotal.IsNegative() {
		return malformed("fair market value cannot be negative")
	}
	return nil
}
