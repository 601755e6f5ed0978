package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/sidenav/internal/domain"
	"github.com/MrSnakeDoc/sidenav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sidenav/internal/logger"
	"github.com/MrSnakeDoc/sidenav/internal/render"
)

// Tree renders the sidebar as text. ?path= narrows it to the matching section.
func Tree(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := currentStore(w, d)
		if store == nil {
			return
		}

		var buf bytes.Buffer
		var err error
		if path := strings.TrimSpace(r.URL.Query().Get("path")); path != "" {
			sec, lookupErr := store.SectionFor(path)
			d.Metrics.ObserveLookup(lookupErr == nil)
			if errors.Is(lookupErr, domain.ErrNotFound) {
				writeError(w, http.StatusNotFound, lookupErr.Error())
				return
			}
			err = render.Section(&buf, sec)
		} else {
			err = render.Sidebar(&buf, store)
		}
		if err != nil {
			d.Logger.Error("failed to render tree", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "render failed")
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write(buf.Bytes())
	}
}
