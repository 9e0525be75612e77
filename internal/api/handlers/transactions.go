package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fiitrack/fii-portfolio-backend/internal/api/middleware"
	"github.com/fiitrack/fii-portfolio-backend/internal/api/request"
	"github.com/fiitrack/fii-portfolio-backend/internal/api/response"
	"github.com/fiitrack/fii-portfolio-backend/internal/apperrors"
	"github.com/fiitrack/fii-portfolio-backend/internal/model"
	"github.com/fiitrack/fii-portfolio-backend/internal/repository"
	"github.com/fiitrack/fii-portfolio-backend/internal/service"
	"github.com/fiitrack/fii-portfolio-backend/internal/validation"
)

// TransactionHandler handles HTTP requests for the buy/sell ledger endpoints.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// GetTransactions handles GET requests to retrieve the user's transactions.
// Supports filtering by FII and date range, plus skip/limit pagination.
//
// Endpoint: GET /api/v1/transactions?fii_id=&start_date=&end_date=&skip=&limit=
// Response: 200 OK with array of TransactionResponse ordered by date
// Error: 400 Bad Request if a filter parameter is malformed
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	filter := repository.TransactionFilter{
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

	transactions, err := h.transactionService.GetTransactions(userID, filter)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// GetTransaction handles GET requests to retrieve a single transaction.
//
// Endpoint: GET /api/v1/transactions/{uuid}
// Response: 200 OK with TransactionResponse
// Error: 400 Bad Request if the ID is not a valid UUID
// Error: 404 Not Found if the transaction does not exist or belongs to another user
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	transactionID := chi.URLParam(r, "uuid")

	if err := validation.ValidateUUID(transactionID); err != nil {
		response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	transaction, err := h.transactionService.GetTransaction(userID, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// CreateTransaction handles POST requests to record a buy or sell.
// The total amount is derived server-side from quantity and price.
//
// Endpoint: POST /api/v1/transactions
// Request Body: CreateTransactionRequest (fii_id, type, date, quantity, price_per_unit)
// Response: 201 Created with Transaction
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the referenced FII does not exist
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.transactionService.CreateTransaction(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrFiiNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrFiiNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// UpdateTransaction handles PUT requests to update a transaction.
// Holdings and dividend eligibility reflect the corrected row on the next read.
//
// Endpoint: PUT /api/v1/transactions/{uuid}
// Request Body: UpdateTransactionRequest (all fields optional)
// Response: 200 OK with updated Transaction
// Error: 400 Bad Request if the ID is invalid or validation fails
// Error: 404 Not Found if the transaction or referenced FII does not exist
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	transactionID := chi.URLParam(r, "uuid")

	if err := validation.ValidateUUID(transactionID); err != nil {
		response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	req, err := parseJSON[request.UpdateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(r.Context(), userID, transactionID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) || errors.Is(err, apperrors.ErrFiiNotFound) {
			response.RespondError(w, http.StatusNotFound, err.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// DeleteTransaction handles DELETE requests to soft delete a transaction.
// The row stops counting toward holdings and eligibility immediately.
//
// Endpoint: DELETE /api/v1/transactions/{uuid}
// Response: 204 No Content
// Error: 400 Bad Request if the ID is not a valid UUID
// Error: 404 Not Found if the transaction does not exist
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	transactionID := chi.URLParam(r, "uuid")

	if err := validation.ValidateUUID(transactionID); err != nil {
		response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if err := h.transactionService.DeleteTransaction(r.Context(), userID, transactionID); err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// parseDateRange reads the optional start_date and end_date query parameters.
func parseDateRange(r *http.Request) (*model.Date, *model.Date, error) {
	var startDate, endDate *model.Date

	if raw := r.URL.Query().Get("start_date"); raw != "" {
		parsed, err := model.ParseDate(raw)
		if err != nil {
			return nil, nil, err
		}
		startDate = &parsed
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		parsed, err := model.ParseDate(raw)
		if err != nil {
			return nil, nil, err
		}
		endDate = &parsed
	}

	return startDate, endDate, nil
}
