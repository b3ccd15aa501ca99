package model

import "github.com/shopspring/decimal"

// TaxResult is the complete output of one engine invocation. It is computed
// fresh every time: no field survives between runs and identical inputs
// always produce an identical result.
type TaxResult struct {
	ShortTermGains  decimal.Decimal  `json:"shortTermGains"`
	LongTermGains   decimal.Decimal  `json:"longTermGains"`
	OrdinaryIncome  decimal.Decimal  `json:"ordinaryIncome"`
	TaxLiability    decimal.Decimal  `json:"taxLiability"`
	RealizedEvents  []RealizedEvent  `json:"realizedEvents"`
	Holdings        []Holding        `json:"holdings"`
	WashSales       []WashSaleMatch  `json:"washSales"`
	Recommendations []Recommendation `json:"recommendations"`
}
