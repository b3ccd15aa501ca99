package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Engine errors represent failures of the tax computation itself. The engine
// either returns a complete TaxResult or fails with one of these; it never
// returns a partially populated result.
var (
	// ErrMalformedTransaction indicates that a transaction record failed
	// structural validation (missing field, non-positive quantity,
	// unrecognized kind, zero date). Never retried or auto-corrected.
	ErrMalformedTransaction = errors.New("malformed transaction")

	// ErrInsufficientLots indicates that a disposal's quantity exceeds the
	// total open lots for that asset at that point in history. This is a
	// data-integrity signal (e.g. an untracked transfer-in was omitted)
	// and is fatal for the computation.
	ErrInsufficientLots = errors.New("insufficient lots for disposal")

	// ErrUnsupportedMethod indicates an unrecognized accounting-method value.
	ErrUnsupportedMethod = errors.New("unsupported accounting method")

	// ErrPriceLookupFailure indicates the price lookup could not resolve a
	// current price for an asset with open holdings. Recovered locally:
	// the holding is reported without unrealized gain/loss.
	ErrPriceLookupFailure = errors.New("price lookup failed")
)

// Domain entity errors represent missing entities in the system.
var (
	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrPriceNotFound indicates no cached price exists for an asset.
	ErrPriceNotFound = errors.New("asset price not found")
)

// Operation failure errors represent system-level failures when retrieving
// or processing data.
var (
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToComputeTaxReport     = errors.New("failed to compute tax report")
	ErrFailedToRefreshPrices        = errors.New("failed to refresh asset prices")
)

// MalformedTransactionError carries the ID of the offending record so the
// caller can surface which input failed validation.
type MalformedTransactionError struct {
	TransactionID string
	Reason        string
}

func (e *MalformedTransactionError) Error() string {
	return fmt.Sprintf("malformed transaction %s: %s", e.TransactionID, e.Reason)
}

// Unwrap makes the error match ErrMalformedTransaction under errors.Is.
func (e *MalformedTransactionError) Unwrap() error {
	return ErrMalformedTransaction
}

// InsufficientLotsError reports a disposal that could not be covered by the
// open lots of its asset.
type InsufficientLotsError struct {
	Asset     string
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientLotsError) Error() string {
	return fmt.Sprintf("insufficient lots for %s: requested %s, available %s",
		e.Asset, e.Requested.String(), e.Available.String())
}

// Unwrap makes the error match ErrInsufficientLots under errors.Is.
func (e *InsufficientLotsError) Unwrap() error {
	return ErrInsufficientLots
}
