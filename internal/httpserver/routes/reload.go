package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/sidenav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sidenav/internal/httpserver/handlers"
)

func init() { Register(Admin, registerReload) }

// POST /reload queues a reload of the navigation file.
func registerReload(r chi.Router, d deps.Deps) {
	r.Post("/reload", handlers.Reload(d))
}
