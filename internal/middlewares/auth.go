package middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/avorobev/todo-service/internal/logger"
)

// Tokener defines the minimal token surface needed by the middleware.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetSubject(ctx context.Context, tokenString string) (string, error)
}

// contextKey is an unexported type for keys in context.
type contextKey struct{}

var subjectKey = contextKey{}

// NewContextWithSubject stores the authenticated username in the context.
func NewContextWithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey, subject)
}

// GetSubjectFromContext retrieves the authenticated username from the
// context. Returns "" if the request was not authenticated.
func GetSubjectFromContext(ctx context.Context) string {
	subject, _ := ctx.Value(subjectKey).(string)
	return subject
}

// AuthMiddleware validates the bearer credential and stores the
// authenticated subject in the request context. Every failure collapses
// into one uniform 401 so the response does not reveal which check failed.
func AuthMiddleware(tokener Tokener) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Infow("authorization failed", "error", err)
				unauthorized(w)
				return
			}

			subject, err := tokener.GetSubject(ctx, tokenString)
			if err != nil {
				logger.Log.Infow("authorization failed", "error", err)
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(NewContextWithSubject(ctx, subject)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"detail": "Not authenticated"})
}
