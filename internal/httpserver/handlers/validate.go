package handlers

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/sidenav/internal/domain"
	"github.com/MrSnakeDoc/sidenav/internal/httpserver/deps"
)

type failureReport struct {
	At         time.Time `json:"at"`
	Error      string    `json:"error"`
	Violations []string  `json:"violations,omitempty"`
}

type validateResponse struct {
	Revision    string           `json:"revision,omitempty"`
	Valid       bool             `json:"valid"`
	Warnings    []domain.Warning `json:"warnings"`
	LastFailure *failureReport   `json:"last_failure,omitempty"`
}

// Validate reports the health of the navigation: warnings for the active
// revision and the violations of the latest rejected reload, if any.
func Validate(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := validateResponse{Warnings: []domain.Warning{}}

		if rev := d.Index.Current(); rev != nil {
			resp.Revision = rev.ID
			resp.Valid = true
			if warnings := rev.Store.Audit(); warnings != nil {
				resp.Warnings = warnings
			}
		}

		if at, err := d.Index.LastFailure(); err != nil {
			report := &failureReport{At: at, Error: err.Error()}
			for _, v := range domain.Violations(err) {
				report.Violations = append(report.Violations, v.Error())
			}
			resp.LastFailure = report
		}

		status := http.StatusOK
		if resp.LastFailure != nil {
			// Serving a stale revision: the file on disk is broken.
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, resp)
	}
}
