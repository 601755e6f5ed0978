package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/sidenav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sidenav/internal/httpserver/handlers"
)

func init() { Register(Public, registerPublic) }

func registerPublic(r chi.Router, d deps.Deps) {
	r.Get("/sidebar", handlers.Sidebar(d))
	r.Get("/nav", handlers.Nav(d))
	r.Get("/links", handlers.Links(d))
	r.Get("/tree", handlers.Tree(d))
}
