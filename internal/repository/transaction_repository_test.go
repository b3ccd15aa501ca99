package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/model"
	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/repository"
	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/testutil"
)

// TestTransactionRepository_GetAllTransactions_SameDateOrder pins the
// retrieval order for rows sharing a date.
//
// WHY: Quick-succession inserts (a bulk import, or a trade's two legs) land
// on the same date with created_at timestamps of second resolution, and
// UUIDs sort randomly. The tie-break must be insertion order, not ID order:
// a same-day buy-then-sell returned sell-first would make a valid history
// fail lot consumption. IDs are chosen to sort opposite to insertion order
// so an ID-based tie-break fails the test.
func TestTransactionRepository_GetAllTransactions_SameDateOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)

	date := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	buy := &model.Transaction{
		ID:                   "zzzzzzzz-ffff-4fff-8fff-ffffffffffff",
		Date:                 date,
		Kind:                 model.KindAcquire,
		Asset:                "BTC",
		Quantity:             decimal.NewFromInt(1),
		CostBasisTotal:       decimal.NewFromInt(30000),
		FairMarketValueTotal: decimal.Zero,
	}
	sell := &model.Transaction{
		ID:                   "00000000-0000-4000-8000-000000000000",
		Date:                 date,
		Kind:                 model.KindDispose,
		Asset:                "BTC",
		Quantity:             decimal.NewFromInt(1),
		CostBasisTotal:       decimal.Zero,
		FairMarketValueTotal: decimal.NewFromInt(32000),
	}

	if err := repo.InsertTransaction(context.Background(), buy); err != nil {
		t.Fatalf("InsertTransaction failed: %v", err)
	}
	if err := repo.InsertTransaction(context.Background(), sell); err != nil {
		t.Fatalf("InsertTransaction failed: %v", err)
	}

	transactions, err := repo.GetAllTransactions()
	if err != nil {
		t.Fatalf("GetAllTransactions failed: %v", err)
	}

	if len(transactions) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(transactions))
	}
	if transactions[0].ID != buy.ID {
		t.Errorf("Expected the buy first, got %s", transactions[0].ID)
	}
	if transactions[1].ID != sell.ID {
		t.Errorf("Expected the sell second, got %s", transactions[1].ID)
	}
}
