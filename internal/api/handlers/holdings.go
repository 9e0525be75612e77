package handlers

import (
	"net/http"

	"github.com/fiitrack/fii-portfolio-backend/internal/api/middleware"
	"github.com/fiitrack/fii-portfolio-backend/internal/api/response"
	"github.com/fiitrack/fii-portfolio-backend/internal/apperrors"
	"github.com/fiitrack/fii-portfolio-backend/internal/service"
)

// HoldingsHandler handles HTTP requests for the current positions endpoint.
type HoldingsHandler struct {
	holdingsService *service.HoldingsService
}

// NewHoldingsHandler creates a new HoldingsHandler with the provided service dependency.
func NewHoldingsHandler(holdingsService *service.HoldingsService) *HoldingsHandler {
	return &HoldingsHandler{
		holdingsService: holdingsService,
	}
}

// GetHoldings handles GET requests to compute the user's open positions.
// Positions are derived from the transaction ledger on every call; FIIs whose
// units net to zero are omitted.
//
// Endpoint: GET /api/v1/holdings
// Response: 200 OK with array of Holding ordered by FII tag
// Error: 500 Internal Server Error if the computation fails
func (h *HoldingsHandler) GetHoldings(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	holdings, err := h.holdingsService.GetHoldings(r.Context(), userID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetHoldings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, holdings)
}
