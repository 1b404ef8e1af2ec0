package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/avorobev/todo-service/internal/middlewares"
)

// ownerFromRequest returns the authenticated subject. Handlers behind the
// auth middleware always have one; the guard covers misrouted requests.
func ownerFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner := middlewares.GetSubjectFromContext(r.Context())
	if owner == "" {
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return "", false
	}
	return owner, true
}

// todoIDFromRequest parses the {id} path parameter. An unparsable id cannot
// name an existing item, so it reports not found rather than bad request.
func todoIDFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "todo not found")
		return uuid.Nil, false
	}
	return id, true
}
