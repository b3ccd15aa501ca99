package engine

import (
	"github.com/shopspring/decimal"

	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/model"
)

// PriceLookup resolves the current price per unit for an asset. It is
// supplied by the caller as a synchronous pure function; the engine never
// fetches prices itself.
type PriceLookup func(asset string) (decimal.Decimal, error)

// buildHoldings aggregates the remaining open lots of every asset into a
// position summary. When the price lookup fails for an asset the holding
// still reports quantity and cost basis; only current value and unrealized
// gain/loss are omitted. Realized results never depend on live prices, so a
// lookup failure must not fail the whole computation.
func buildHoldings(book *lotBook, prices PriceLookup) []model.Holding {
	var holdings []model.Holding

	var currentAsset string
	for _, lot := range book.openLots() {
		if lot.Asset != currentAsset {
			holdings = append(holdings, model.Holding{
				Asset:          lot.Asset,
				Quantity:       decimal.Zero,
				TotalCostBasis: decimal.Zero,
			})
			currentAsset = lot.Asset
		}
		h := &holdings[len(holdings)-1]
		h.Quantity = h.Quantity.Add(lot.RemainingQuantity)
		h.TotalCostBasis = h.TotalCostBasis.Add(lot.RemainingCostBasis())
	}

	for i := range holdings {
		h := &holdings[i]
		h.AverageCostBasis = h.TotalCostBasis.Div(h.Quantity)

		if prices == nil {
			continue
		}
		price, err := prices(h.Asset)
		if err != nil {
			continue
		}
		value := price.Mul(h.Quantity)
		unrealized := value.Sub(h.TotalCostBasis)
		h.CurrentValue = &value
		h.UnrealizedGainLoss = &unrealized
	}

	return holdings
}
