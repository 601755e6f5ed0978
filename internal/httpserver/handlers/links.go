package handlers

import (
	"net/http"
	"strconv"

	"github.com/MrSnakeDoc/sidenav/internal/httpserver/deps"
)

type linksResponse struct {
	Count int      `json:"count"`
	Links []string `json:"links"`
}

// Links lists every link target, sidebar first then nav.
// With ?base=true internal links are prefixed with the site base.
func Links(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		withBase := false
		if v := r.URL.Query().Get("base"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, "base must be a boolean")
				return
			}
			withBase = b
		}

		store := currentStore(w, d)
		if store == nil {
			return
		}

		links := []string{}
		for link := range store.FlattenLinks() {
			if withBase {
				link = store.Href(link)
			}
			links = append(links, link)
		}
		writeJSON(w, http.StatusOK, linksResponse{Count: len(links), Links: links})
	}
}
