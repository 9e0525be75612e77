package handlers

import (
	"errors"
	"net/http"

	"github.com/fiitrack/fii-portfolio-backend/internal/api/middleware"
	"github.com/fiitrack/fii-portfolio-backend/internal/api/request"
	"github.com/fiitrack/fii-portfolio-backend/internal/api/response"
	"github.com/fiitrack/fii-portfolio-backend/internal/apperrors"
	"github.com/fiitrack/fii-portfolio-backend/internal/service"
	"github.com/fiitrack/fii-portfolio-backend/internal/validation"
)

// AuthHandler handles HTTP requests for account and token endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler with the provided service dependency.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles POST requests to create a new account.
//
// Endpoint: POST /api/v1/auth/register
// Request Body: RegisterRequest (email, name, password)
// Response: 201 Created with the new User
// Error: 400 Bad Request if validation fails or the password is too weak
// Error: 409 Conflict if the email is already registered
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.RegisterRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateRegister(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	user, err := h.authService.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailTaken) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrEmailTaken.Error(), nil)
			return
		}
		if errors.Is(err, apperrors.ErrWeakPassword) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrWeakPassword.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to register", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, user)
}

// Login handles POST requests to exchange credentials for a token pair.
//
// Endpoint: POST /api/v1/auth/login
// Request Body: LoginRequest (email, password)
// Response: 200 OK with TokenPair
// Error: 400 Bad Request if validation fails
// Error: 401 Unauthorized if the credentials are wrong
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.LoginRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateLogin(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	pair, err := h.authService.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			response.RespondError(w, http.StatusUnauthorized, apperrors.ErrInvalidCredentials.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to log in", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, pair)
}

// Refresh handles POST requests to rotate a refresh token.
//
// Endpoint: POST /api/v1/auth/refresh
// Request Body: RefreshRequest (refresh_token)
// Response: 200 OK with a new TokenPair
// Error: 401 Unauthorized if the token is unknown, expired or revoked
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.RefreshRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.RefreshToken == "" {
		response.RespondError(w, http.StatusBadRequest, "refresh_token is required", nil)
		return
	}

	pair, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidToken) ||
			errors.Is(err, apperrors.ErrTokenExpired) ||
			errors.Is(err, apperrors.ErrTokenRevoked) {
			response.RespondError(w, http.StatusUnauthorized, err.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to refresh token", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, pair)
}

// Logout handles POST requests to revoke a refresh token.
//
// Endpoint: POST /api/v1/auth/logout
// Request Body: LogoutRequest (refresh_token)
// Response: 204 No Content
// Error: 401 Unauthorized if the token is unknown
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.LogoutRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.RefreshToken == "" {
		response.RespondError(w, http.StatusBadRequest, "refresh_token is required", nil)
		return
	}

	if err := h.authService.Logout(r.Context(), req.RefreshToken); err != nil {
		if errors.Is(err, apperrors.ErrInvalidToken) {
			response.RespondError(w, http.StatusUnauthorized, apperrors.ErrInvalidToken.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to log out", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Me handles GET requests for the authenticated user's profile.
//
// Endpoint: GET /api/v1/auth/me
// Response: 200 OK with User
// Error: 404 Not Found if the account no longer exists
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.authService.GetUser(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrUserNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve user", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, user)
}
