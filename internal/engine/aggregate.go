package engine

import (
	"github.com/shopspring/decimal"

	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/model"
)

// aggregate sums realized events into short-term and long-term buckets.
// Wash-sale-disallowed events are excluded from the deductible totals; they
// remain visible to the caller through the wash-sale match list.
func aggregate(events []model.RealizedEvent) (shortTerm, longTerm decimal.Decimal) {
	shortTerm = decimal.Zero
	longTerm = decimal.Zero

	for _, event := range events {
		if event.WashSaleDisallowed {
			continue
		}
		switch event.Term {
		case model.TermLong:
			longTerm = longTerm.Add(event.GainLoss)
		default:
			shortTerm = shortTerm.Add(event.GainLoss)
		}
	}
	return shortTerm, longTerm
}
