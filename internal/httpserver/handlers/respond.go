package handlers

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/MrSnakeDoc/sidenav/internal/domain"
	"github.com/MrSnakeDoc/sidenav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sidenav/internal/index"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// currentRevision returns the active revision, or answers 503 and returns nil.
// The revision ID is exposed as X-Nav-Revision so clients can cache on it.
func currentRevision(w http.ResponseWriter, d deps.Deps) *index.Revision {
	rev := d.Index.Current()
	if rev == nil {
		writeError(w, http.StatusServiceUnavailable, "navigation not loaded yet")
		return nil
	}
	w.Header().Set("X-Nav-Revision", rev.ID)
	return rev
}

// currentStore is currentRevision for handlers that only need the store.
func currentStore(w http.ResponseWriter, d deps.Deps) *domain.Store {
	if rev := currentRevision(w, d); rev != nil {
		return rev.Store
	}
	return nil
}
