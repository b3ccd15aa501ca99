package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/model"
)

// washSaleWindowDays is the number of calendar days on either side of a
// loss-realizing sale in which a same-asset acquisition disallows the loss
// (a 61-day window centered on the sale, both ends inclusive).
const washSaleWindowDays = 30

// replacementCandidate tracks how much of an acquisition's quantity is still
// available to absorb disallowed losses. Matching is quantity-aware: an
// acquisition that has been fully used against earlier losing sales cannot
// disallow another one.
type replacementCandidate struct {
	date     time.Time
	capacity decimal.Decimal
}

// detectWashSales scans the realized events for losses with a same-asset
// acquisition inside the wash-sale window. The earliest qualifying
// acquisition with remaining capacity is selected as the replacement; the
// matched event is flagged and its loss excluded from the deductible
// aggregates. Events are returned with flags applied; raw gain/loss numbers
// are never mutated.
//
// The acquisition that opened the consumed lot itself never qualifies as its
// own replacement.
func detectWashSales(events []model.RealizedEvent, transactions []model.Transaction) ([]model.RealizedEvent, []model.WashSaleMatch) {
	candidates := make(map[string][]*replacementCandidate)
	for _, tx := range transactions {
		if tx.Kind != model.KindAcquire {
			continue
		}
		candidates[tx.Asset] = append(candidates[tx.Asset], &replacementCandidate{
			date:     tx.Date,
			capacity: tx.Quantity,
		})
	}

	flagged := make([]model.RealizedEvent, len(events))
	copy(flagged, events)

	var matches []model.WashSaleMatch
	for i, event := range flagged {
		if !event.GainLoss.IsNegative() {
			continue
		}
		for _, candidate := range candidates[event.Asset] {
			if !candidate.capacity.IsPositive() {
				continue
			}
			if sameDay(candidate.date, event.AcquisitionDate) {
				continue
			}
			apart := daysBetween(candidate.date, event.DisposalDate)
			if apart < 0 {
				apart = -apart
			}
			if apart > washSaleWindowDays {
				continue
			}

			candidate.capacity = candidate.capacity.Sub(decimal.Min(candidate.capacity, event.Quantity))
			flagged[i].WashSaleDisallowed = true
			matches = append(matches, model.WashSaleMatch{
				OriginalSale:               flagged[i],
				ReplacementAcquisitionDate: candidate.date,
				DisallowedLoss:             event.GainLoss.Neg(),
				DaysApart:                  apart,
			})
			break
		}
	}

	return flagged, matches
}

func sameDay(a, b time.Time) bool {
	return daysBetween(a, b) == 0
}
