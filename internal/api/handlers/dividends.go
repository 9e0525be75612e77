package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fiitrack/fii-portfolio-backend/internal/api/middleware"
	"github.com/fiitrack/fii-portfolio-backend/internal/api/request"
	"github.com/fiitrack/fii-portfolio-backend/internal/api/response"
	"github.com/fiitrack/fii-portfolio-backend/internal/apperrors"
	"github.com/fiitrack/fii-portfolio-backend/internal/repository"
	"github.com/fiitrack/fii-portfolio-backend/internal/service"
	"github.com/fiitrack/fii-portfolio-backend/internal/validation"
)

// Year bounds for the monthly summary endpoint. Wide enough for any real
// ledger, tight enough to reject obvious garbage.
const (
	minSummaryYear = 1900
	maxSummaryYear = 2200
)

// DividendHandler handles HTTP requests for dividend endpoints, including
// the monthly eligibility summary.
type DividendHandler struct {
	dividendService *service.DividendService
}

// NewDividendHandler creates a new DividendHandler with the provided service dependency.
func NewDividendHandler(dividendService *service.DividendService) *DividendHandler {
	return &DividendHandler{
		dividendService: dividendService,
	}
}

// GetDividends handles GET requests to retrieve the user's dividend records.
// Supports filtering by FII and payment date range, plus skip/limit pagination.
//
// Endpoint: GET /api/v1/dividends?fii_id=&start_date=&end_date=&skip=&limit=
// Response: 200 OK with array of DividendResponse, newest payment first
// Error: 400 Bad Request if a filter parameter is malformed
// Error: 500 Internal Server Error if retrieval fails
func (h *DividendHandler) GetDividends(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	filter := repository.DividendFilter{
		FiiID: r.URL.Query().Get("fii_id"),
		Skip:  parseIntParam(r, "skip", 0),
		Limit: parseIntParam(r, "limit", 100),
	}

	if filter.FiiID != "" {
		if err := validation.ValidateUUID(filter.FiiID); err != nil {
			response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
	}

	startDate, endDate, err := parseDateRange(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	filter.StartDate = startDate
	filter.EndDate = endDate

	dividends, err := h.dividendService.GetDividends(userID, filter)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveDividends.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, dividends)
}

// GetDividend handles GET requests to retrieve a single dividend record.
//
// Endpoint: GET /api/v1/dividends/{uuid}
// Response: 200 OK with DividendResponse
// Error: 400 Bad Request if the ID is not a valid UUID
// Error: 404 Not Found if the dividend does not exist or belongs to another user
func (h *DividendHandler) GetDividend(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	dividendID := chi.URLParam(r, "uuid")

	if err := validation.ValidateUUID(dividendID); err != nil {
		response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	dividend, err := h.dividendService.GetDividend(userID, dividendID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDividendNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrDividendNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveDividends.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, dividend)
}

// MonthlySummary handles GET requests for the monthly dividend summary.
// Units held and totals are recomputed from the transaction ledger on every
// call; nothing about the result is cached.
//
// Endpoint: GET /api/v1/dividends/summary/monthly?year=2024&month=1
// Response: 200 OK with MonthlyDividendSummary (empty fiis list and zero
// total when the month has no dividends)
// Error: 400 Bad Request if year or month is missing or out of range
// Error: 500 Internal Server Error if the aggregation fails
func (h *DividendHandler) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < minSummaryYear || year > maxSummaryYear {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidYear.Error(), nil)
		return
	}

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidMonth.Error(), nil)
		return
	}

	summary, err := h.dividendService.MonthlySummary(userID, year, month)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetMonthlySummary.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// CreateDividend handles POST requests to record a dividend payment.
// When the FII has a cut day, the resolved cut-off date is cached on the
// record; summaries still recompute it on every read.
//
// Endpoint: POST /api/v1/dividends
// Request Body: CreateDividendRequest (fii_id, payment_date, amount_per_unit, and optionally reference_date)
// Response: 201 Created with Dividend
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the referenced FII does not exist
func (h *DividendHandler) CreateDividend(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	req, err := parseJSON[request.CreateDividendRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateDividend(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	dividend, err := h.dividendService.CreateDividend(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrFiiNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrFiiNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create dividend", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, dividend)
}

// UpdateDividend handles PUT requests to update a dividend record.
//
// Endpoint: PUT /api/v1/dividends/{uuid}
// Request Body: UpdateDividendRequest (all fields optional)
// Response: 200 OK with updated Dividend
// Error: 400 Bad Request if the ID is invalid or validation fails
// Error: 404 Not Found if the dividend or referenced FII does not exist
func (h *DividendHandler) UpdateDividend(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	dividendID := chi.URLParam(r, "uuid")

	if err := validation.ValidateUUID(dividendID); err != nil {
		response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	req, err := parseJSON[request.UpdateDividendRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateDividend(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	dividend, err := h.dividendService.UpdateDividend(r.Context(), userID, dividendID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDividendNotFound) || errors.Is(err, apperrors.ErrFiiNotFound) {
			response.RespondError(w, http.StatusNotFound, err.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update dividend", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, dividend)
}

// DeleteDividend handles DELETE requests to soft delete a dividend record.
//
// Endpoint: DELETE /api/v1/dividends/{uuid}
// Response: 204 No Content
// Error: 400 Bad Request if the ID is not a valid UUID
// Error: 404 Not Found if the dividend does not exist
func (h *DividendHandler) DeleteDividend(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	dividendID := chi.URLParam(r, "uuid")

	if err := validation.ValidateUUID(dividendID); err != nil {
		response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if err := h.dividendService.DeleteDividend(r.Context(), userID, dividendID); err != nil {
		if errors.Is(err, apperrors.ErrDividendNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrDividendNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete dividend", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
