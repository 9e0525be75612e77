package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/fiitrack/fii-portfolio-backend/internal/model"
	"github.com/fiitrack/fii-portfolio-backend/internal/testutil"
)

func setupFiiHandler(t *testing.T) (*FiiHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	fs := testutil.NewTestFiiService(t, db)
	return NewFiiHandler(fs), db
}

func TestFiiHandler_CreateFii(t *testing.T) {
	t.Run("creates a catalog entry with a cut day", func(t *testing.T) {
		handler, db := setupFiiHandler(t)

		body, _ := json.Marshal(map[string]any{
			"tag":     "abcd11",
			"name":    "Fundo ABCD",
			"cut_day": 15,
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/fiis", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateFii(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Fii
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.Tag != "ABCD11" {
			t.Errorf("Expected uppercased tag ABCD11, got %s", response.Tag)
		}
		if response.CutDay == nil || *response.CutDay != 15 {
			t.Errorf("Expected cut day 15, got %v", response.CutDay)
		}

		testutil.AssertRowCount(t, db, "fii", 1)
	})

	t.Run("returns 400 for an out-of-range cut day", func(t *testing.T) {
		handler, _ := setupFiiHandler(t)

		body, _ := json.Marshal(map[string]any{
			"tag":     "ABCD11",
			"name":    "Fundo ABCD",
			"cut_day": 32,
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/fiis", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateFii(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 409 for a duplicate tag", func(t *testing.T) {
		handler, db := setupFiiHandler(t)

		testutil.NewFii().WithTag("ABCD11").Build(t, db)

		body, _ := json.Marshal(map[string]any{
			"tag":  "abcd11",
			"name": "Another",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/fiis", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateFii(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("Expected 409, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestFiiHandler_GetFii(t *testing.T) {
	t.Run("returns 400 for a malformed id", func(t *testing.T) {
		handler, _ := setupFiiHandler(t)

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/v1/fiis/not-a-uuid",
			map[string]string{"uuid": "not-a-uuid"},
		)
		w := httptest.NewRecorder()

		handler.GetFii(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 404 for an unknown id", func(t *testing.T) {
		handler, _ := setupFiiHandler(t)

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/v1/fiis/"+id,
			map[string]string{"uuid": id},
		)
		w := httptest.NewRecorder()

		handler.GetFii(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestFiiHandler_UpdateFii(t *testing.T) {
	t.Run("updates the cut-day policy", func(t *testing.T) {
		handler, db := setupFiiHandler(t)

		fii := testutil.NewFii().Build(t, db)

		body, _ := json.Marshal(map[string]any{"cut_day": 20})
		req := httptest.NewRequest(http.MethodPut, "/api/v1/fiis/"+fii.ID, bytes.NewReader(body))
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("uuid", fii.ID)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
		w := httptest.NewRecorder()

		handler.UpdateFii(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Fii
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.CutDay == nil || *response.CutDay != 20 {
			t.Errorf("Expected cut day 20, got %v", response.CutDay)
		}
	})
}
