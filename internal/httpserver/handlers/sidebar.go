package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/sidenav/internal/domain"
	"github.com/MrSnakeDoc/sidenav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sidenav/internal/logger"
)

type sidebarResponse struct {
	Path    string         `json:"path"`
	Section domain.Section `json:"section"`
}

// Sidebar answers which section serves ?path= using longest-prefix matching.
func Sidebar(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimSpace(r.URL.Query().Get("path"))
		if path == "" {
			writeError(w, http.StatusBadRequest, "missing path query parameter")
			return
		}

		store := currentStore(w, d)
		if store == nil {
			return
		}

		sec, err := store.SectionFor(path)
		d.Metrics.ObserveLookup(err == nil)
		if errors.Is(err, domain.ErrNotFound) {
			d.Logger.Debug("no sidebar section", logger.String("path", path))
			writeError(w, http.StatusNotFound, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, sidebarResponse{Path: path, Section: sec})
	}
}
