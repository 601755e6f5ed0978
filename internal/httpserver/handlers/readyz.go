package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/sidenav/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready    bool   `json:"ready"`
	Revision string `json:"revision,omitempty"`
}

// Readyz reports ready once a revision has been published.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rev := d.Index.Current()
		if rev == nil {
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Ready: false})
			return
		}
		writeJSON(w, http.StatusOK, readyzResponse{Ready: true, Revision: rev.ID})
	}
}
