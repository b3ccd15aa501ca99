package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Term classifies the holding period of a realized event for tax-rate treatment.
type Term string

const (
	// TermShort covers holding periods of less than 366 days.
	TermShort Term = "short"

	// TermLong covers holding periods of 366 days or more.
	TermLong Term = "long"
)

// RealizedEvent records the gain or loss realized when a disposal consumes a
// slice of one open lot. A disposal that spans multiple lots produces one
// event per consumed slice. Proceeds are the slice's prorated share of the
// disposal's fair market value; GainLoss = Proceeds - CostBasis.
type RealizedEvent struct {
	Asset              string          `json:"asset"`
	DisposalDate       time.Time       `json:"disposalDate"`
	AcquisitionDate    time.Time       `json:"acquisitionDate"`
	Quantity           decimal.Decimal `json:"quantity"`
	Proceeds           decimal.Decimal `json:"proceeds"`
	CostBasis          decimal.Decimal `json:"costBasis"`
	GainLoss           decimal.Decimal `json:"gainLoss"`
	Term               Term            `json:"term"`
	WashSaleDisallowed bool            `json:"washSaleDisallowed"`
}

// WashSaleMatch links a loss-realizing event to the replacement acquisition
// that disallows it. The event's raw numbers are untouched; the disallowed
// loss is simply excluded from the deductible aggregates.
type WashSaleMatch struct {
	OriginalSale               RealizedEvent   `json:"originalSale"`
	ReplacementAcquisitionDate time.Time       `json:"replacementAcquisitionDate"`
	DisallowedLoss             decimal.Decimal `json:"disallowedLoss"`
	DaysApart                  int             `json:"daysApart"`
}
