package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/model"
)

// longTermHoldingDays is the exact holding period, in days, at which a
// disposal becomes long-term. A disposal 365 days after acquisition is
// short-term; 366 days after is long-term.
const longTermHoldingDays = 366

// processResult is the outcome of one walk over the normalized sequence.
type processResult struct {
	events         []model.RealizedEvent
	ordinaryIncome decimal.Decimal
	book           *lotBook
}

// processDisposals walks the normalized transaction sequence once. Acquire
// and income events open lots (income additionally counts its fair market
// value as ordinary income at receipt); dispose events consume lots under
// the selected method and emit one RealizedEvent per consumed slice.
// Transfers move coins between venues without affecting basis and are
// no-ops for lot accounting.
func processDisposals(transactions []model.Transaction, method Method) (*processResult, error) {
	result := &processResult{
		ordinaryIncome: decimal.Zero,
		book:           newLotBook(),
	}

	for _, tx := range transactions {
		switch tx.Kind {
		case model.KindAcquire:
			result.book.add(tx.Asset, tx.Date, tx.Quantity, tx.CostBasisTotal.Div(tx.Quantity))

		case model.KindIncome:
			// Cost basis of the new lot is the fair market value at receipt.
			result.book.add(tx.Asset, tx.Date, tx.Quantity, tx.FairMarketValueTotal.Div(tx.Quantity))
			result.ordinaryIncome = result.ordinaryIncome.Add(tx.FairMarketValueTotal)

		case model.KindDispose:
			slices, err := result.book.consume(tx.Asset, tx.Quantity, method)
			if err != nil {
				return nil, err
			}
			for _, slice := range slices {
				result.events = append(result.events, realize(tx, slice))
			}

		case model.KindTransfer:
			// Venue movement only; basis and holding period are preserved.
		}
	}

	return result, nil
}

// realize builds the RealizedEvent for one consumed lot slice. Proceeds are
// the slice's prorated share of the disposal's total fair market value.
func realize(disposal model.Transaction, slice consumedSlice) model.RealizedEvent {
	proceeds := disposal.FairMarketValueTotal.Mul(slice.quantity).Div(disposal.Quantity)
	costBasis := slice.quantity.Mul(slice.costBasisPerUnit)

	return model.RealizedEvent{
		Asset:           disposal.Asset,
		DisposalDate:    disposal.Date,
		AcquisitionDate: slice.acquisitionDate,
		Quantity:        slice.quantity,
		Proceeds:        proceeds,
		CostBasis:       costBasis,
		GainLoss:        proceeds.Sub(costBasis),
		Term:            termOf(slice.acquisitionDate, disposal.Date),
	}
}

// termOf classifies the holding period by exact date subtraction, not
// calendar-month approximation, so the 365/366-day boundary is exact across
// leap years.
func termOf(acquired, disposed time.Time) model.Term {
	if daysBetween(acquired, disposed) >= longTermHoldingDays {
		return model.TermLong
	}
	return model.TermShort
}

// daysBetween returns the number of whole calendar days from a to b,
// ignoring time-of-day and timezone components.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}
