package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/sidenav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sidenav/internal/httpserver/handlers"
)

func init() { Register(Admin, registerAdmin) }

func registerAdmin(r chi.Router, d deps.Deps) {
	r.Get("/validate", handlers.Validate(d))
	r.Get("/revisions", handlers.Revisions(d))
	r.Get("/infra", handlers.Infra(d))
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}
}
