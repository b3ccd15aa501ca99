package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/model"
)

// recommend runs the heuristic rules over the computed results:
//
//	(a) unrealized losses past the materiality threshold are flagged as
//	    loss-harvesting candidates with a year-end deadline,
//	(b) short-term lots within the configured number of days of long-term
//	    treatment get a deferral suggestion,
//	(c) every detected wash sale gets an avoidance note.
//
// Recommendation IDs are derived from content so identical inputs yield
// identical output.
func (e *Engine) recommend(
	holdings []model.Holding,
	book *lotBook,
	washSales []model.WashSaleMatch,
	prices PriceLookup,
	asOf time.Time,
) []model.Recommendation {
	var recommendations []model.Recommendation

	yearEnd := time.Date(asOf.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)

	for _, h := range holdings {
		if h.UnrealizedGainLoss == nil || !h.UnrealizedGainLoss.IsNegative() {
			continue
		}
		loss := h.UnrealizedGainLoss.Neg()
		if loss.LessThan(e.cfg.HarvestThreshold) {
			continue
		}
		deadline := yearEnd
		recommendations = append(recommendations, model.Recommendation{
			ID:    recommendationID("loss_harvest", h.Asset),
			Type:  model.RecommendationLossHarvest,
			Title: fmt.Sprintf("Harvest %s loss", h.Asset),
			Description: fmt.Sprintf(
				"Selling your %s position would realize a loss of %s, which can offset other gains. Realize it before year end to count toward this tax year.",
				h.Asset, loss.StringFixed(2)),
			PotentialSavings: loss.Mul(e.cfg.ShortTermRate),
			Deadline:         &deadline,
		})
	}

	for _, lot := range book.openLots() {
		held := daysBetween(lot.AcquisitionDate, asOf)
		if held >= longTermHoldingDays || longTermHoldingDays-held > e.cfg.LongTermWindowDays {
			continue
		}
		if prices == nil {
			continue
		}
		price, err := prices(lot.Asset)
		if err != nil {
			continue
		}
		gain := price.Mul(lot.RemainingQuantity).Sub(lot.RemainingCostBasis())
		if !gain.IsPositive() {
			// Deferral only changes the rate on a gain.
			continue
		}
		crossover := lot.AcquisitionDate.AddDate(0, 0, longTermHoldingDays)
		recommendations = append(recommendations, model.Recommendation{
			ID:    recommendationID("hold_for_long_term", lot.Asset+":"+lot.AcquisitionDate.Format("2006-01-02")),
			Type:  model.RecommendationHoldForLongTerm,
			Title: fmt.Sprintf("Hold %s for long-term treatment", lot.Asset),
			Description: fmt.Sprintf(
				"Your %s lot acquired %s becomes long-term on %s. Deferring the sale until then taxes the gain at the preferential rate.",
				lot.Asset, lot.AcquisitionDate.Format("2006-01-02"), crossover.Format("2006-01-02")),
			PotentialSavings: gain.Mul(e.cfg.ShortTermRate.Sub(e.cfg.LongTermRate)),
			Deadline:         &crossover,
		})
	}

	for _, ws := range washSales {
		recommendations = append(recommendations, model.Recommendation{
			ID:    recommendationID("avoid_wash_sale", ws.OriginalSale.Asset+":"+ws.OriginalSale.DisposalDate.Format("2006-01-02")),
			Type:  model.RecommendationAvoidWashSale,
			Title: fmt.Sprintf("Wash sale detected on %s", ws.OriginalSale.Asset),
			Description: fmt.Sprintf(
				"A %s loss of %s was disallowed because you repurchased within %d days. Waiting more than 30 days before repurchasing keeps the deduction.",
				ws.OriginalSale.Asset, ws.DisallowedLoss.StringFixed(2), ws.DaysApart),
			PotentialSavings: ws.DisallowedLoss.Mul(e.cfg.ShortTermRate),
		})
	}

	return recommendations
}

// recommendationID derives a stable UUID from the recommendation's identity.
func recommendationID(kind, key string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(kind+":"+key)).String()
}
