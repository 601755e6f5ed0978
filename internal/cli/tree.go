package cli

import (
	"github.com/MrSnakeDoc/sidenav/internal/render"
)

type TreeCmd struct {
	File string `arg:"" type:"path" help:"Navigation file (YAML or JSON)."`
	Path string `help:"Only draw the section serving this request path." placeholder:"PATH"`
	Nav  bool   `help:"Draw the top navigation bar instead of the sidebar."`
}

func (c *TreeCmd) Run(ctx *Context) error {
	store, err := mustLoad(c.File)
	if err != nil {
		return err
	}

	switch {
	case c.Nav:
		return render.Nav(ctx.Out, store)
	case c.Path != "":
		sec, err := store.SectionFor(c.Path)
		if err != nil {
			return err
		}
		return render.Section(ctx.Out, sec)
	default:
		return render.Sidebar(ctx.Out, store)
	}
}
