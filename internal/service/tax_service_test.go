package service_test

import (
	"context"
	"testing"

	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/api/request"
	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/testutil"
)

// TestTaxService_ComputeReport_SameDayBuyThenSell replays a same-date
// buy-then-sell recorded in quick succession.
//
// WHY: Both rows share one date, so only insertion order separates them on
// retrieval. The report must see the acquisition before the disposal; if
// the rows came back sell-first the engine would reject the history as
// over-disposing.
func TestTaxService_ComputeReport_SameDayBuyThenSell(t *testing.T) {
	db := testutil.SetupTestDB(t)
	transactionSvc := testutil.NewTestTransactionService(t, db)
	taxSvc := testutil.NewTestTaxService(t, db)

	_, err := transactionSvc.ImportTransactions(context.Background(), request.ImportTransactionsRequest{
		Transactions: []request.CreateTransactionRequest{
			{Date: "2024-03-01", Type: "buy", Asset: "BTC", Quantity: "1", CostBasis: "30000"},
			{Date: "2024-03-01", Type: "sell", Asset: "BTC", Quantity: "1", FairMarketValue: "32000"},
		},
	})
	if err != nil {
		t.Fatalf("ImportTransactions failed: %v", err)
	}

	result, err := taxSvc.ComputeReport("fifo")
	if err != nil {
		t.Fatalf("ComputeReport failed: %v", err)
	}

	if result.ShortTermGains.String() != "2000" {
		t.Errorf("Expected short-term gains 2000, got %s", result.ShortTermGains)
	}
	if len(result.RealizedEvents) != 1 {
		t.Errorf("Expected 1 realized event, got %d", len(result.RealizedEvents))
	}
	if len(result.Holdings) != 0 {
		t.Errorf("Expected no open holdings, got %d", len(result.Holdings))
	}
}
