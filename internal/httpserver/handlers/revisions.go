package handlers

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/sidenav/internal/httpserver/deps"
)

type revisionSummary struct {
	ID       string    `json:"id"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loaded_at"`
	Current  bool      `json:"current"`
	Sections int       `json:"sections"`
	Leaves   int       `json:"leaves"`
}

func Revisions(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		revs := d.Index.Revisions()
		out := make([]revisionSummary, 0, len(revs))
		for i, rev := range revs {
			stats := rev.Store.Stats()
			out = append(out, revisionSummary{
				ID:       rev.ID,
				Source:   rev.Source,
				LoadedAt: rev.LoadedAt,
				Current:  i == 0,
				Sections: stats.Sections,
				Leaves:   stats.Leaves,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}
