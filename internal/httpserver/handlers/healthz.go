package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/sidenav/internal/httpserver/deps"
)

type buildInfo struct {
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version,omitempty"`
}

type healthzResponse struct {
	Status        string    `json:"status"`
	UptimeSeconds float64   `json:"uptime_seconds"`
	Build         buildInfo `json:"build"`
	Revisions     int       `json:"revisions"`
}

// Healthz is the liveness probe: the process is up, whether or not a
// navigation revision has been loaded yet (see Readyz for that).
func Healthz(d deps.Deps) http.HandlerFunc {
	build := buildInfo{
		Version:   d.Version,
		Commit:    d.Commit,
		BuildDate: d.BuildDate,
		GoVersion: d.GoVersion,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, healthzResponse{
			Status:        "ok",
			UptimeSeconds: d.TimeNow().Sub(d.StartTime).Seconds(),
			Build:         build,
			Revisions:     d.Index.Count(),
		})
	}
}
