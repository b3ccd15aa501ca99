package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/api/request"
	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/model"
	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/testutil"
)

func setupTransactionHandler(t *testing.T) (*TransactionHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ts := testutil.NewTestTransactionService(t, db)
	return NewTransactionHandler(ts), db
}

func TestTransactionHandler_AllTransactions(t *testing.T) {
	t.Run("returns empty array when no transactions exist", func(t *testing.T) {
		handler, _ := setupTransactionHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/transaction", nil)
		w := httptest.NewRecorder()

		handler.AllTransactions(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.Transaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 0 {
			t.Errorf("Expected empty array, got %d transactions", len(response))
		}
	})

	t.Run("returns all transactions successfully", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)

		tx1 := testutil.NewTransaction().WithDate("2024-01-10").Build(t, db)
		tx2 := testutil.NewTransaction().WithDate("2024-02-20").WithAsset("ETH").Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/transaction", nil)
		w := httptest.NewRecorder()

		handler.AllTransactions(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.Transaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 2 {
			t.Fatalf("Expected 2 transactions, got %d", len(response))
		}

		// Ordered by date ascending
		if response[0].ID != tx1.ID || response[1].ID != tx2.ID {
			t.Errorf("Expected transactions ordered by date, got %s then %s", response[0].ID, response[1].ID)
		}
	})

	t.Run("returns 500 on database error", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/transaction", nil)
		w := httptest.NewRecorder()

		handler.AllTransactions(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_GetTransaction(t *testing.T) {
	t.Run("returns transaction successfully", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)

		tx := testutil.NewTransaction().Build(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/transaction/"+tx.ID,
			map[string]string{"uuid": tx.ID},
		)
		w := httptest.NewRecorder()

		handler.GetTransaction(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Transaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.ID != tx.ID {
			t.Errorf("Expected transaction %s, got %s", tx.ID, response.ID)
		}
		if response.Asset != "BTC" {
			t.Errorf("Expected asset BTC, got %s", response.Asset)
		}
	})

	t.Run("returns 404 for unknown transaction", func(t *testing.T) {
		handler, _ := setupTransactionHandler(t)

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/transaction/"+id,
			map[string]string{"uuid": id},
		)
		w := httptest.NewRecorder()

		handler.GetTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("creates buy transaction successfully", func(t *testing.T) {
		handler, _ := setupTransactionHandler(t)

		body := request.CreateTransactionRequest{
			Date:      "2024-03-01",
			Type:      "buy",
			Asset:     "BTC",
			Quantity:  "0.5",
			CostBasis: "15000",
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/transaction", body)
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.Transaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 1 {
			t.Fatalf("Expected 1 stored transaction, got %d", len(response))
		}
		if response[0].Kind != model.KindAcquire {
			t.Errorf("Expected kind acquire, got %s", response[0].Kind)
		}
		if response[0].ID == "" {
			t.Error("Expected a generated ID")
		}
	})

	t.Run("stores trade as disposal plus acquisition", func(t *testing.T) {
		handler, _ := setupTransactionHandler(t)

		body := request.CreateTransactionRequest{
			Date:            "2024-03-01",
			Type:            "trade",
			Asset:           "BTC",
			Quantity:        "0.1",
			FairMarketValue: "6000",
			ToAsset:         "ETH",
			ToQuantity:      "2",
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/transaction", body)
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.Transaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 2 {
			t.Fatalf("Expected 2 stored transactions, got %d", len(response))
		}
		if response[0].Kind != model.KindDispose || response[0].Asset != "BTC" {
			t.Errorf("Expected first leg to dispose BTC, got %s %s", response[0].Kind, response[0].Asset)
		}
		if response[1].Kind != model.KindAcquire || response[1].Asset != "ETH" {
			t.Errorf("Expected second leg to acquire ETH, got %s %s", response[1].Kind, response[1].Asset)
		}
		if !response[1].CostBasisTotal.Equal(response[0].FairMarketValueTotal) {
			t.Errorf("Expected incoming basis %s to equal outgoing value %s",
				response[1].CostBasisTotal, response[0].FairMarketValueTotal)
		}
	})

	t.Run("returns 400 for invalid type", func(t *testing.T) {
		handler, _ := setupTransactionHandler(t)

		body := request.CreateTransactionRequest{
			Date:     "2024-03-01",
			Type:     "airdrop",
			Asset:    "BTC",
			Quantity: "1",
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/transaction", body)
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for malformed body", func(t *testing.T) {
		handler, _ := setupTransactionHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/transaction", nil)
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_ImportTransactions(t *testing.T) {
	t.Run("imports batch successfully", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)

		body := request.ImportTransactionsRequest{
			Transactions: []request.CreateTransactionRequest{
				{Date: "2024-01-01", Type: "buy", Asset: "BTC", Quantity: "1", CostBasis: "40000"},
				{Date: "2024-02-01", Type: "stake", Asset: "ETH", Quantity: "0.2", FairMarketValue: "500"},
			},
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/transaction/import", body)
		w := httptest.NewRecorder()

		handler.ImportTransactions(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM "transaction"`).Scan(&count); err != nil {
			t.Fatalf("Failed to count transactions: %v", err)
		}
		if count != 2 {
			t.Errorf("Expected 2 stored transactions, got %d", count)
		}
	})

	t.Run("returns 400 for empty batch", func(t *testing.T) {
		handler, _ := setupTransactionHandler(t)

		body := request.ImportTransactionsRequest{}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/transaction/import", body)
		w := httptest.NewRecorder()

		handler.ImportTransactions(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 when any row is invalid", func(t *testing.T) {
		handler, _ := setupTransactionHandler(t)

		body := request.ImportTransactionsRequest{
			Transactions: []request.CreateTransactionRequest{
				{Date: "2024-01-01", Type: "buy", Asset: "BTC", Quantity: "1", CostBasis: "40000"},
				{Date: "not-a-date", Type: "buy", Asset: "BTC", Quantity: "1", CostBasis: "40000"},
			},
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/transaction/import", body)
		w := httptest.NewRecorder()

		handler.ImportTransactions(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_UpdateTransaction(t *testing.T) {
	t.Run("updates fields successfully", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)

		tx := testutil.NewTransaction().Build(t, db)

		newQuantity := "2"
		body := request.UpdateTransactionRequest{Quantity: &newQuantity}
		jsonReq := testutil.NewJSONRequest(t, http.MethodPut, "/api/transaction/"+tx.ID, body)
		req := testutil.NewRequestWithURLParams(http.MethodPut, "/api/transaction/"+tx.ID, map[string]string{"uuid": tx.ID})
		req.Body = jsonReq.Body

		w := httptest.NewRecorder()
		handler.UpdateTransaction(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Transaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Quantity.String() != "2" {
			t.Errorf("Expected quantity 2, got %s", response.Quantity)
		}
	})

	t.Run("returns 404 for unknown transaction", func(t *testing.T) {
		handler, _ := setupTransactionHandler(t)

		id := testutil.MakeID()
		newAsset := "ETH"
		body := request.UpdateTransactionRequest{Asset: &newAsset}
		jsonReq := testutil.NewJSONRequest(t, http.MethodPut, "/api/transaction/"+id, body)
		req := testutil.NewRequestWithURLParams(http.MethodPut, "/api/transaction/"+id, map[string]string{"uuid": id})
		req.Body = jsonReq.Body

		w := httptest.NewRecorder()
		handler.UpdateTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("rejects update to trade type", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)

		tx := testutil.NewTransaction().Build(t, db)

		tradeType := "trade"
		body := request.UpdateTransactionRequest{Type: &tradeType}
		jsonReq := testutil.NewJSONRequest(t, http.MethodPut, "/api/transaction/"+tx.ID, body)
		req := testutil.NewRequestWithURLParams(http.MethodPut, "/api/transaction/"+tx.ID, map[string]string{"uuid": tx.ID})
		req.Body = jsonReq.Body

		w := httptest.NewRecorder()
		handler.UpdateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("deletes transaction successfully", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)

		tx := testutil.NewTransaction().Build(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodDelete,
			"/api/transaction/"+tx.ID,
			map[string]string{"uuid": tx.ID},
		)
		w := httptest.NewRecorder()

		handler.DeleteTransaction(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}

		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM "transaction"`).Scan(&count); err != nil {
			t.Fatalf("Failed to count transactions: %v", err)
		}
		if count != 0 {
			t.Errorf("Expected transaction to be deleted, %d remain", count)
		}
	})

	t.Run("returns 404 for unknown transaction", func(t *testing.T) {
		handler, _ := setupTransactionHandler(t)

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(
			http.MethodDelete,
			"/api/transaction/"+id,
			map[string]string{"uuid": id},
		)
		w := httptest.NewRecorder()

		handler.DeleteTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}
