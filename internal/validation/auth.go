package validation

import (
	"strings"

	"github.com/fiitrack/fii-portfolio-backend/internal/api/request"
)

// ValidateRegister validates an account registration request.
// Password strength is enforced separately by the auth layer.
func ValidateRegister(req request.RegisterRequest) error {
	errors := make(map[string]string)

	checkEmail(errors, req.Email)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > 255 {
		errors["name"] = "name must be at most 255 characters"
	}

	if req.Password == "" {
		errors["password"] = "password is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateLogin validates a login request.
func ValidateLogin(req request.LoginRequest) error {
	errors := make(map[string]string)

	checkEmail(errors, req.Email)

	if req.Password == "" {
		errors["password"] = "password is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func checkEmail(errors map[string]string, email string) {
	email = strings.TrimSpace(email)
	if email == "" {
		errors["email"] = "email is required"
		return
	}
	// Minimal shape check; deliverability is not this layer's concern.
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || len(email) > 255 {
		errors["email"] = "email is invalid"
	}
}
