package engine

import (
	"testing"
	"time"

	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/model"
)

// TestTermOf_Boundary pins the short/long boundary by exact day counting.
//
// WHY: Term classification is the single most consequential edge case in the
// engine: one day decides which rate applies. Exactly 365 days must stay
// short-term and exactly 366 must be long-term, in both leap and non-leap
// spans.
func TestTermOf_Boundary(t *testing.T) {
	cases := []struct {
		name     string
		acquired time.Time
		disposed time.Time
		want     model.Term
	}{
		{"365 days non-leap", d(2022, time.March, 1), d(2023, time.March, 1), model.TermShort},
		{"366 days non-leap", d(2022, time.March, 1), d(2023, time.March, 2), model.TermLong},
		{"365 days across leap day", d(2023, time.June, 15), d(2024, time.June, 14), model.TermShort},
		{"366 days across leap day", d(2023, time.June, 15), d(2024, time.June, 15), model.TermLong},
		{"same day", d(2024, time.January, 1), d(2024, time.January, 1), model.TermShort},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := termOf(tc.acquired, tc.disposed); got != tc.want {
				t.Errorf("termOf(%s, %s) = %s, want %s (%d days apart)",
					tc.acquired.Format("2006-01-02"), tc.disposed.Format("2006-01-02"),
					got, tc.want, daysBetween(tc.acquired, tc.disposed))
			}
		})
	}
}

// TestProcessDisposals_MultiLotProration verifies per-slice proceeds.
//
// WHY: A disposal spanning several lots must allocate its total fair market
// value to each slice proportionally, or gains shift between lots with
// different terms.
func TestProcessDisposals_MultiLotProration(t *testing.T) {
	transactions := []model.Transaction{
		acquire("t1", "ETH", d(2022, time.January, 1), "2", "2000"),
		acquire("t2", "ETH", d(2023, time.December, 1), "2", "6000"),
		dispose("t3", "ETH", d(2024, time.January, 10), "4", "12000"),
	}

	result, err := processDisposals(transactions, MethodFIFO)
	if err != nil {
		t.Fatalf("processDisposals() returned unexpected error: %v", err)
	}

	if len(result.events) != 2 {
		t.Fatalf("Expected 2 realized events, got %d", len(result.events))
	}

	first, second := result.events[0], result.events[1]

	// Each slice gets half of the 12000 proceeds.
	assertDecimal(t, "first proceeds", first.Proceeds, "6000")
	assertDecimal(t, "first gain", first.GainLoss, "4000")
	if first.Term != model.TermLong {
		t.Errorf("Expected first slice long-term, got %s", first.Term)
	}

	assertDecimal(t, "second proceeds", second.Proceeds, "6000")
	assertDecimal(t, "second gain", second.GainLoss, "0")
	if second.Term != model.TermShort {
		t.Errorf("Expected second slice short-term, got %s", second.Term)
	}
}

// TestProcessDisposals_IncomeCreatesLot checks the dual role of income events.
//
// WHY: Staking rewards are taxed at receipt and the received coins carry a
// basis equal to that taxed value; dropping either side double-taxes or
// under-taxes the asset.
func TestProcessDisposals_IncomeCreatesLot(t *testing.T) {
	transactions := []model.Transaction{
		income("t1", "ETH", d(2024, time.March, 1), "2", "5000"),
	}

	result, err := processDisposals(transactions, MethodFIFO)
	if err != nil {
		t.Fatalf("processDisposals() returned unexpected error: %v", err)
	}

	assertDecimal(t, "ordinary income", result.ordinaryIncome, "5000")

	open := result.book.openLots()
	if len(open) != 1 {
		t.Fatalf("Expected 1 open lot, got %d", len(open))
	}
	assertDecimal(t, "lot basis per unit", open[0].CostBasisPerUnit, "2500")
	assertDecimal(t, "lot quantity", open[0].RemainingQuantity, "2")
}

// TestProcessDisposals_TransferIsNeutral confirms transfers leave the book
// alone.
//
// WHY: Moving coins between venues changes custody, not ownership; a
// transfer that created or consumed lots would corrupt both the basis and
// the holding period.
func TestProcessDisposals_TransferIsNeutral(t *testing.T) {
	transactions := []model.Transaction{
		acquire("t1", "BTC", d(2023, time.January, 1), "1", "20000"),
		{
			ID:       "t2",
			Date:     d(2023, time.June, 1),
			Kind:     model.KindTransfer,
			Asset:    "BTC",
			Quantity: dec("1"),
			Venue:    "cold-wallet",
		},
	}

	result, err := processDisposals(transactions, MethodFIFO)
	if err != nil {
		t.Fatalf("processDisposals() returned unexpected error: %v", err)
	}

	if len(result.events) != 0 {
		t.Errorf("Expected no realized events, got %d", len(result.events))
	}
	open := result.book.openLots()
	if len(open) != 1 {
		t.Fatalf("Expected 1 open lot, got %d", len(open))
	}
	if !open[0].AcquisitionDate.Equal(d(2023, time.January, 1)) {
		t.Errorf("Transfer must preserve the acquisition date, got %s",
			open[0].AcquisitionDate.Format("2006-01-02"))
	}
}
