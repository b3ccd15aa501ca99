package model

import "github.com/shopspring/decimal"

// Holding is the current aggregate open position in an asset, summarizing
// all remaining lots. CurrentValue and UnrealizedGainLoss are nil when no
// current price could be resolved for the asset; quantity and cost basis
// are always present.
type Holding struct {
	Asset              string           `json:"asset"`
	Quantity           decimal.Decimal  `json:"quantity"`
	AverageCostBasis   decimal.Decimal  `json:"averageCostBasis"`
	TotalCostBasis     decimal.Decimal  `json:"totalCostBasis"`
	CurrentValue       *decimal.Decimal `json:"currentValue,omitempty"`
	UnrealizedGainLoss *decimal.Decimal `json:"unrealizedGainLoss,omitempty"`
}
