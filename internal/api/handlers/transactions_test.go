package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fiitrack/fii-portfolio-backend/internal/model"
	"github.com/fiitrack/fii-portfolio-backend/internal/testutil"
)

func setupTransactionHandler(t *testing.T) (*TransactionHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ts := testutil.NewTestTransactionService(t, db)
	return NewTransactionHandler(ts), db
}

func TestTransactionHandler_GetTransactions(t *testing.T) {
	t.Run("returns empty array when no transactions exist", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)

		user := testutil.NewUser().Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
		req = testutil.AsUser(req, user.ID)
		w := httptest.NewRecorder()

		handler.GetTransactions(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.TransactionResponse
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		if response == nil {
			t.Error("Expected non-nil array, got nil")
		}
		if len(response) != 0 {
			t.Errorf("Expected empty array, got %d transactions", len(response))
		}
	})

	t.Run("filters by date range", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)

		user := testutil.NewUser().Build(t, db)
		fii := testutil.NewFii().Build(t, db)
		testutil.NewTransaction(user.ID, fii.ID).WithDate(t, "2024-01-10").Build(t, db)
		inRange := testutil.NewTransaction(user.ID, fii.ID).WithDate(t, "2024-02-10").Build(t, db)
		testutil.NewTransaction(user.ID, fii.ID).WithDate(t, "2024-03-10").Build(t, db)

		req := testutil.NewRequestWithQueryParams(
			http.MethodGet,
			"/api/v1/transactions",
			map[string]string{"start_date": "2024-02-01", "end_date": "2024-02-28"},
		)
		req = testutil.AsUser(req, user.ID)
		w := httptest.NewRecorder()

		handler.GetTransactions(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.TransactionResponse
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		if len(response) != 1 {
			t.Fatalf("Expected 1 transaction, got %d", len(response))
		}
		if response[0].ID != inRange.ID {
			t.Errorf("Expected transaction %s, got %s", inRange.ID, response[0].ID)
		}
	})

	t.Run("returns 400 for a malformed date filter", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)
		user := testutil.NewUser().Build(t, db)

		req := testutil.NewRequestWithQueryParams(
			http.MethodGet,
			"/api/v1/transactions",
			map[string]string{"start_date": "31/01/2024"},
		)
		req = testutil.AsUser(req, user.ID)
		w := httptest.NewRecorder()

		handler.GetTransactions(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("records a buy and derives the total", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)

		user := testutil.NewUser().Build(t, db)
		fii := testutil.NewFii().Build(t, db)

		body, _ := json.Marshal(map[string]any{
			"fii_id":         fii.ID,
			"type":           "buy",
			"date":           "2024-01-10",
			"quantity":       100,
			"price_per_unit": "10.50",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewReader(body))
		req = testutil.AsUser(req, user.ID)
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response struct {
			TotalAmount string `json:"total_amount"`
		}
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.TotalAmount != "1050.00" {
			t.Errorf("Expected total 1050.00, got %s", response.TotalAmount)
		}
	})

	t.Run("returns 400 for an invalid type", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)

		user := testutil.NewUser().Build(t, db)
		fii := testutil.NewFii().Build(t, db)

		body, _ := json.Marshal(map[string]any{
			"fii_id":         fii.ID,
			"type":           "transfer",
			"date":           "2024-01-10",
			"quantity":       100,
			"price_per_unit": "10.50",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewReader(body))
		req = testutil.AsUser(req, user.ID)
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for price with too many decimals", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)

		user := testutil.NewUser().Build(t, db)
		fii := testutil.NewFii().Build(t, db)

		body, _ := json.Marshal(map[string]any{
			"fii_id":         fii.ID,
			"type":           "buy",
			"date":           "2024-01-10",
			"quantity":       100,
			"price_per_unit": "10.505",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewReader(body))
		req = testutil.AsUser(req, user.ID)
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("soft deletes and returns 204", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)

		user := testutil.NewUser().Build(t, db)
		fii := testutil.NewFii().Build(t, db)
		tx := testutil.NewTransaction(user.ID, fii.ID).Build(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodDelete,
			"/api/v1/transactions/"+tx.ID,
			map[string]string{"uuid": tx.ID},
		)
		req = testutil.AsUser(req, user.ID)
		w := httptest.NewRecorder()

		handler.DeleteTransaction(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 404 for another user's transaction", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)

		user := testutil.NewUser().Build(t, db)
		other := testutil.NewUser().Build(t, db)
		fii := testutil.NewFii().Build(t, db)
		tx := testutil.NewTransaction(other.ID, fii.ID).Build(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodDelete,
			"/api/v1/transactions/"+tx.ID,
			map[string]string{"uuid": tx.ID},
		)
		req = testutil.AsUser(req, user.ID)
		w := httptest.NewRecorder()

		handler.DeleteTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}
