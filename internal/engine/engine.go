// Package engine implements the crypto tax lot-accounting computation: lot
// tracking under a chosen accounting method, realized gain/loss per disposal,
// wash-sale detection, holdings summaries, heuristic recommendations and a
// proxy liability estimate.
//
// The engine is a pure function of (transactions, method, price lookup,
// configuration). It holds no state between invocations, performs no I/O and
// is safe for concurrent use; switching accounting methods is a plain
// re-invocation.
package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/model"
)

// Config carries the tunable parameters of the computation. Rates are the
// flat proxy rates of the liability estimate; the remaining fields drive the
// recommendation heuristics.
type Config struct {
	// ShortTermRate approximates the marginal income bracket rate applied
	// to short-term gains and ordinary income.
	ShortTermRate decimal.Decimal

	// LongTermRate is the preferential rate applied to long-term gains.
	LongTermRate decimal.Decimal

	// HarvestThreshold is the minimum unrealized loss that makes a holding
	// a loss-harvesting candidate.
	HarvestThreshold decimal.Decimal

	// LongTermWindowDays is how close (in days) a lot must be to long-term
	// treatment before a deferral recommendation is produced.
	LongTermWindowDays int

	// AsOf anchors time-relative recommendations (year-end deadlines,
	// days-to-long-term). Zero means the current UTC time.
	AsOf time.Time
}

// DefaultConfig returns the proxy rates and thresholds used when the caller
// does not override them.
func DefaultConfig() Config {
	return Config{
		ShortTermRate:      decimal.NewFromFloat(0.24),
		LongTermRate:       decimal.NewFromFloat(0.15),
		HarvestThreshold:   decimal.NewFromInt(100),
		LongTermWindowDays: 30,
	}
}

// Engine computes tax results. The zero value is not usable; construct with New.
type Engine struct {
	cfg Config
}

// New creates an Engine with the given configuration.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Calculate runs the full pipeline over the given transactions and returns a
// complete TaxResult, or an error from the taxonomy in apperrors. The input
// slice is not modified and may arrive in any order. prices may be nil, in
// which case holdings report cost basis only.
func (e *Engine) Calculate(transactions []model.Transaction, method Method, prices PriceLookup) (*model.TaxResult, error) {
	if _, err := ParseMethod(string(method)); err != nil {
		return nil, err
	}

	normalized, err := normalize(transactions)
	if err != nil {
		return nil, err
	}

	processed, err := processDisposals(normalized, method)
	if err != nil {
		return nil, err
	}

	events, washSales := detectWashSales(processed.events, normalized)
	shortTerm, longTerm := aggregate(events)
	holdings := buildHoldings(processed.book, prices)

	asOf := e.cfg.AsOf
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	recommendations := e.recommend(holdings, processed.book, washSales, prices, asOf)

	return &model.TaxResult{
		ShortTermGains:  shortTerm,
		LongTermGains:   longTerm,
		OrdinaryIncome:  processed.ordinaryIncome,
		TaxLiability:    e.estimateLiability(shortTerm, longTerm, processed.ordinaryIncome),
		RealizedEvents:  events,
		Holdings:        holdings,
		WashSales:       washSales,
		Recommendations: recommendations,
	}, nil
}
