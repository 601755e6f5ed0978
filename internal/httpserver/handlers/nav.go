package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/sidenav/internal/domain"
	"github.com/MrSnakeDoc/sidenav/internal/httpserver/deps"
)

type navResponse struct {
	Site domain.Site       `json:"site"`
	Nav  []domain.NavEntry `json:"nav"`
}

func Nav(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := currentStore(w, d)
		if store == nil {
			return
		}
		nav := store.Nav()
		if nav == nil {
			nav = []domain.NavEntry{}
		}
		writeJSON(w, http.StatusOK, navResponse{Site: store.Site(), Nav: nav})
	}
}
