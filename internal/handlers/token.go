package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/avorobev/todo-service/internal/logger"
	"github.com/avorobev/todo-service/internal/services"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// TokenResponse represents a successful token response
// swagger:model TokenResponse
type TokenResponse struct {
	// Signed bearer token
	AccessToken string `json:"access_token"`

	// Token type, always "bearer"
	// example: bearer
	TokenType string `json:"token_type"`
}

// NewTokenHandler returns an HTTP handler for the password-flow token
// endpoint. Credentials arrive as form fields, not JSON.
// @Summary Obtain an access token
// @Description Authenticates with form-encoded username/password and returns a bearer token.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 200 {object} handlers.TokenResponse "Bearer token returned"
// @Failure 401 {object} handlers.ErrorResponse "Incorrect username or password"
// @Router /token [post]
func NewTokenHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid form body")
			return
		}

		username := r.PostFormValue("username")
		password := r.PostFormValue("password")

		token, err := svc.Login(r.Context(), username, password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials),
				errors.Is(err, services.ErrUserDoesNotExist):
				// Uniform response; do not reveal which check failed.
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeError(w, http.StatusUnauthorized, "Incorrect username or password")
			default:
				logger.Log.Errorw("internal server error", "error", err)
				writeError(w, http.StatusInternalServerError, "Login failed")
			}
			return
		}

		writeJSON(w, http.StatusOK, TokenResponse{
			AccessToken: token,
			TokenType:   "bearer",
		})
	}
}
