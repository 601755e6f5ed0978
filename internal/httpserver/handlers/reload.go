package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/sidenav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sidenav/internal/logger"
)

type reloadResponse struct {
	Status   string `json:"status"`
	Revision string `json:"revision,omitempty"` // revision served until the reload lands
}

// Reload queues a reload of the navigation file. The trigger channel holds a
// single pending request; a second one while it is queued gets a 429.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var current string
		if rev := d.Index.Current(); rev != nil {
			current = rev.ID
		}

		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual reload queued",
				logger.String("remote_ip", r.RemoteAddr),
				logger.String("revision", current))
			writeJSON(w, http.StatusAccepted, reloadResponse{Status: "queued", Revision: current})
		default:
			d.Logger.Warn("reload already pending",
				logger.String("remote_ip", r.RemoteAddr))
			writeError(w, http.StatusTooManyRequests, "reload already pending")
		}
	}
}
