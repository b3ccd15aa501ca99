package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecommendationType identifies the heuristic that produced a recommendation.
type RecommendationType string

const (
	// RecommendationLossHarvest flags an unrealized loss large enough to be
	// worth realizing before year end.
	RecommendationLossHarvest RecommendationType = "loss_harvest"

	// RecommendationHoldForLongTerm flags a short-term position close to
	// crossing into long-term treatment.
	RecommendationHoldForLongTerm RecommendationType = "hold_for_long_term"

	// RecommendationAvoidWashSale flags a detected wash sale.
	RecommendationAvoidWashSale RecommendationType = "avoid_wash_sale"
)

// Recommendation is a heuristic suggestion derived from the computed tax
// result. PotentialSavings is an estimate, not a guarantee; Deadline is set
// only when the suggestion is time-bound.
type Recommendation struct {
	ID               string             `json:"id"`
	Type             RecommendationType `json:"type"`
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	PotentialSavings decimal.Decimal    `json:"potentialSavings"`
	Deadline         *time.Time         `json:"deadline,omitempty"`
}
