package engine

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/apperrors"
	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/model"
)

// lotBook owns the open acquisition lots of every asset seen during one
// engine invocation. Lots are keyed by asset symbol and held in insertion
// (acquisition) order; consumption reorders a working copy per the selected
// method, so the stored order stays stable across method switches.
type lotBook struct {
	lots map[string][]*model.Lot
}

func newLotBook() *lotBook {
	return &lotBook{lots: make(map[string][]*model.Lot)}
}

// add opens a new lot for the asset.
func (b *lotBook) add(asset string, acquired time.Time, quantity, costBasisPerUnit decimal.Decimal) {
	b.lots[asset] = append(b.lots[asset], &model.Lot{
		Asset:             asset,
		AcquisitionDate:   acquired,
		OriginalQuantity:  quantity,
		RemainingQuantity: quantity,
		CostBasisPerUnit:  costBasisPerUnit,
	})
}

// totalOpen returns the total undisposed quantity for the asset.
func (b *lotBook) totalOpen(asset string) decimal.Decimal {
	total := decimal.Zero
	for _, lot := range b.lots[asset] {
		total = total.Add(lot.RemainingQuantity)
	}
	return total
}

// consumedSlice records the portion of one lot consumed by a disposal.
type consumedSlice struct {
	acquisitionDate  time.Time
	quantity         decimal.Decimal
	costBasisPerUnit decimal.Decimal
}

// consume removes quantity from the asset's open lots in the order dictated
// by the method, splitting the final lot when it only partially covers the
// remainder. Fully-consumed lots are removed from the book. Fails with an
// InsufficientLotsError before touching any lot if the open quantity cannot
// cover the disposal; a disposal must never drive a position negative.
func (b *lotBook) consume(asset string, quantity decimal.Decimal, method Method) ([]consumedSlice, error) {
	available := b.totalOpen(asset)
	if available.LessThan(quantity) {
		return nil, &apperrors.InsufficientLotsError{
			Asset:     asset,
			Requested: quantity,
			Available: available,
		}
	}

	ordered := make([]*model.Lot, len(b.lots[asset]))
	copy(ordered, b.lots[asset])
	sort.SliceStable(ordered, func(i, j int) bool {
		return method.lotBefore(*ordered[i], *ordered[j])
	})

	var slices []consumedSlice
	remaining := quantity
	for _, lot := range ordered {
		if remaining.IsZero() {
			break
		}
		take := decimal.Min(lot.RemainingQuantity, remaining)
		slices = append(slices, consumedSlice{
			acquisitionDate:  lot.AcquisitionDate,
			quantity:         take,
			costBasisPerUnit: lot.CostBasisPerUnit,
		})
		lot.RemainingQuantity = lot.RemainingQuantity.Sub(take)
		remaining = remaining.Sub(take)
	}

	b.dropExhausted(asset)
	return slices, nil
}

// dropExhausted removes lots whose remaining quantity reached zero.
func (b *lotBook) dropExhausted(asset string) {
	open := b.lots[asset][:0]
	for _, lot := range b.lots[asset] {
		if lot.RemainingQuantity.IsPositive() {
			open = append(open, lot)
		}
	}
	if len(open) == 0 {
		delete(b.lots, asset)
		return
	}
	b.lots[asset] = open
}

// openLots returns a snapshot of all open lots, sorted by asset symbol and
// acquisition date so downstream output is deterministic.
func (b *lotBook) openLots() []model.Lot {
	assets := make([]string, 0, len(b.lots))
	for asset := range b.lots {
		assets = append(assets, asset)
	}
	sort.Strings(assets)

	var lots []model.Lot
	for _, asset := range assets {
		for _, lot := range b.lots[asset] {
			lots = append(lots, *lot)
		}
	}
	return lots
}
