package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the closed set of event kinds the tax engine understands.
// User-facing transaction types (buy, sell, trade, stake, mine, transfer) are
// mapped onto these kinds at the API boundary; a trade arrives as a dispose
// of the outgoing asset followed by an acquire of the incoming asset.
type TransactionKind string

const (
	// KindAcquire is a purchase that opens a new tax lot.
	KindAcquire TransactionKind = "acquire"

	// KindDispose is a sale or the outgoing leg of a trade. It consumes
	// open lots and realizes gain or loss.
	KindDispose TransactionKind = "dispose"

	// KindIncome is a staking or mining reward. It is taxed as ordinary
	// income at receipt and opens a new lot with cost basis equal to the
	// fair market value at receipt.
	KindIncome TransactionKind = "income"

	// KindTransfer is a movement between venues. It neither opens nor
	// consumes lots.
	KindTransfer TransactionKind = "transfer"
)

// ValidKinds contains the recognized transaction kinds.
var ValidKinds = map[TransactionKind]bool{
	KindAcquire:  true,
	KindDispose:  true,
	KindIncome:   true,
	KindTransfer: true,
}

// Transaction is an immutable record of a single crypto event as stored and
// as consumed by the tax engine. Quantity and monetary totals are exact
// decimals. CostBasisTotal applies to acquisitions; FairMarketValueTotal is
// the total proceeds of a disposal or the receipt value of income.
type Transaction struct {
	ID                   string          `json:"id"`
	Date                 time.Time       `json:"date"`
	Kind                 TransactionKind `json:"kind"`
	Asset                string          `json:"asset"`
	Quantity             decimal.Decimal `json:"quantity"`
	CostBasisTotal       decimal.Decimal `json:"costBasisTotal"`
	FairMarketValueTotal decimal.Decimal `json:"fairMarketValueTotal"`
	Venue                string          `json:"venue,omitempty"`
	CreatedAt            time.Time       `json:"createdAt,omitempty"`
}
