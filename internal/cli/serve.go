package cli

import (
	"github.com/MrSnakeDoc/sidenav/internal/app"
	"github.com/MrSnakeDoc/sidenav/internal/config"
)

// ServeCmd runs the HTTP service. It is configured through SIDENAV_*
// environment variables only.
type ServeCmd struct{}

func (c *ServeCmd) Run(ctx *Context) error {
	a, err := app.New(config.Load())
	if err != nil {
		return err
	}
	return a.Run()
}
