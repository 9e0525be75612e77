package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fiitrack/fii-portfolio-backend/internal/api/request"
	"github.com/fiitrack/fii-portfolio-backend/internal/api/response"
	"github.com/fiitrack/fii-portfolio-backend/internal/apperrors"
	"github.com/fiitrack/fii-portfolio-backend/internal/service"
	"github.com/fiitrack/fii-portfolio-backend/internal/validation"
)

// FiiHandler handles HTTP requests for the FII catalog endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the fiiService.
type FiiHandler struct {
	fiiService *service.FiiService
}

// NewFiiHandler creates a new FiiHandler with the provided service dependency.
func NewFiiHandler(fiiService *service.FiiService) *FiiHandler {
	return &FiiHandler{
		fiiService: fiiService,
	}
}

// GetFiis handles GET requests to retrieve the FII catalog.
// Supports optional filtering by sector and skip/limit pagination.
//
// Endpoint: GET /api/v1/fiis?sector=&skip=&limit=
// Response: 200 OK with array of Fii ordered by tag
// Error: 500 Internal Server Error if retrieval fails
func (h *FiiHandler) GetFiis(w http.ResponseWriter, r *http.Request) {
	sector := r.URL.Query().Get("sector")
	skip := parseIntParam(r, "skip", 0)
	limit := parseIntParam(r, "limit", 100)

	fiis, err := h.fiiService.GetFiis(sector, skip, limit)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveFiis.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, fiis)
}

// GetFii handles GET requests to retrieve a single catalog entry.
//
// Endpoint: GET /api/v1/fiis/{uuid}
// Response: 200 OK with Fii
// Error: 400 Bad Request if the ID is not a valid UUID
// Error: 404 Not Found if the entry does not exist
func (h *FiiHandler) GetFii(w http.ResponseWriter, r *http.Request) {
	fiiID := chi.URLParam(r, "uuid")

	if err := validation.ValidateUUID(fiiID); err != nil {
		response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	fii, err := h.fiiService.GetFii(fiiID)
	if err != nil {
		if errors.Is(err, apperrors.ErrFiiNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrFiiNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveFiis.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, fii)
}

// CreateFii handles POST requests to add a catalog entry.
//
// Endpoint: POST /api/v1/fiis
// Request Body: CreateFiiRequest (tag, name, and optionally sector, cut_day)
// Response: 201 Created with Fii
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 409 Conflict if the tag is already registered
func (h *FiiHandler) CreateFii(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateFiiRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateFii(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	fii, err := h.fiiService.CreateFii(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrTagTaken) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrTagTaken.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create fii", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, fii)
}

// UpdateFii handles PUT requests to update a catalog entry.
// Changing cut_day retroactively changes eligibility for every dividend of
// this FII, since summaries recompute from the ledger on each read.
//
// Endpoint: PUT /api/v1/fiis/{uuid}
// Request Body: UpdateFiiRequest (all fields optional)
// Response: 200 OK with updated Fii
// Error: 400 Bad Request if the ID is invalid or validation fails
// Error: 404 Not Found if the entry does not exist
// Error: 409 Conflict if the new tag is already registered
func (h *FiiHandler) UpdateFii(w http.ResponseWriter, r *http.Request) {
	fiiID := chi.URLParam(r, "uuid")

	if err := validation.ValidateUUID(fiiID); err != nil {
		response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	req, err := parseJSON[request.UpdateFiiRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateFii(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	fii, err := h.fiiService.UpdateFii(r.Context(), fiiID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrFiiNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrFiiNotFound.Error(), nil)
			return
		}
		if errors.Is(err, apperrors.ErrTagTaken) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrTagTaken.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update fii", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, fii)
}

// DeleteFii handles DELETE requests to soft delete a catalog entry.
//
// Endpoint: DELETE /api/v1/fiis/{uuid}
// Response: 204 No Content
// Error: 400 Bad Request if the ID is not a valid UUID
// Error: 404 Not Found if the entry does not exist
func (h *FiiHandler) DeleteFii(w http.ResponseWriter, r *http.Request) {
	fiiID := chi.URLParam(r, "uuid")

	if err := validation.ValidateUUID(fiiID); err != nil {
		response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if err := h.fiiService.DeleteFii(r.Context(), fiiID); err != nil {
		if errors.Is(err, apperrors.ErrFiiNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrFiiNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete fii", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// parseIntParam reads an integer query parameter, falling back to def when
// the parameter is absent or unparseable.
func parseIntParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return def
	}
	return value
}
