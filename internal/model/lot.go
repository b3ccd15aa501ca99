package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot is a distinct acquisition of an asset, tracked with its own quantity
// and per-unit cost basis until fully disposed. A lot only ever shrinks:
// disposals reduce RemainingQuantity and the lot is dropped when it reaches
// zero. Lots are owned by the per-asset lot book and never shared across
// assets.
type Lot struct {
	Asset             string          `json:"asset"`
	AcquisitionDate   time.Time       `json:"acquisitionDate"`
	OriginalQuantity  decimal.Decimal `json:"originalQuantity"`
	RemainingQuantity decimal.Decimal `json:"remainingQuantity"`
	CostBasisPerUnit  decimal.Decimal `json:"costBasisPerUnit"`
}

// RemainingCostBasis returns the cost basis of the undisposed portion of the lot.
func (l Lot) RemainingCostBasis() decimal.Decimal {
	return l.RemainingQuantity.Mul(l.CostBasisPerUnit)
}
