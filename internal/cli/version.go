package cli

import (
	"fmt"

	"github.com/MrSnakeDoc/sidenav/internal/version"
)

type VersionCmd struct{}

func (c *VersionCmd) Run(ctx *Context) error {
	_, err := fmt.Fprintln(ctx.Out, version.String())
	return err
}
