package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/sidenav/internal/httpserver/deps"
)

type componentStatus struct {
	OK            bool   `json:"ok"`
	Revision      string `json:"revision,omitempty"`
	Revisions     *int   `json:"revisions,omitempty"`
	SectionsCount *int   `json:"sections,omitempty"`
	LastReload    string `json:"last_reload,omitempty"`
	LastFailure   string `json:"last_failure,omitempty"`
	Mode          string `json:"mode,omitempty"`
	Impact        string `json:"impact,omitempty"`
	Error         string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"navigation": checkNavigation(d),
			"redis":      checkRedis(d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func checkNavigation(d deps.Deps) componentStatus {
	revisions := d.Index.Count()
	status := componentStatus{Revisions: &revisions, LastReload: "never"}

	if last := d.Index.GetLastReload(); !last.IsZero() {
		status.LastReload = last.Format("2006-01-02 15:04:05")
	}
	if at, err := d.Index.LastFailure(); err != nil {
		status.LastFailure = at.Format("2006-01-02 15:04:05")
		status.Error = err.Error()
	}

	rev := d.Index.Current()
	if rev == nil {
		return status
	}
	sections := len(rev.Store.Keys())
	status.OK = true
	status.Revision = rev.ID
	status.SectionsCount = &sections
	status.Mode = rev.Source
	return status
}

func determineMode(components map[string]componentStatus) string {
	nav := components["navigation"]
	if !nav.OK {
		return "critical" // nothing to serve
	}
	if nav.Error != "" {
		return "stale" // serving last-known-good, file on disk rejected
	}
	if redis := components["redis"]; !redis.OK && redis.Mode != "disabled" {
		return "degraded" // no snapshot persistence
	}
	return "ok"
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     false,
			Mode:   "disabled",
			Impact: "no-restore-on-restart",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "snapshots-not-persisted",
			Error:  err.Error(),
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "snapshots-persisted",
	}
}
