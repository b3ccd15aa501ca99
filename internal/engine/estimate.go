package engine

import "github.com/shopspring/decimal"

// estimateLiability applies flat proxy rates to the aggregated buckets:
// short-term gains and ordinary income at the marginal-bracket proxy rate,
// long-term gains at the preferential rate. Each bucket is clamped on its
// own; a net loss contributes no liability and does not offset the other
// buckets. No bracket arithmetic, no loss carryover.
func (e *Engine) estimateLiability(shortTerm, longTerm, ordinaryIncome decimal.Decimal) decimal.Decimal {
	liability := decimal.Zero

	if shortTerm.IsPositive() {
		liability = liability.Add(shortTerm.Mul(e.cfg.ShortTermRate))
	}
	if ordinaryIncome.IsPositive() {
		liability = liability.Add(ordinaryIncome.Mul(e.cfg.ShortTermRate))
	}
	if longTerm.IsPositive() {
		liability = liability.Add(longTerm.Mul(e.cfg.LongTermRate))
	}
	return liability
}
