package request

// RegisterRequest represents the request body for creating a new account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for an email/password login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest represents the request body for rotating a refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LogoutRequest represents the request body for revoking a refresh token.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}
