package cli

import (
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/sidenav/internal/domain"
)

// ErrInvalid is returned when the file has violations (or warnings with --strict).
var ErrInvalid = errors.New("navigation file is invalid")

type ValidateCmd struct {
	File   string `arg:"" type:"path" help:"Navigation file (YAML or JSON)."`
	Strict bool   `help:"Treat warnings as errors."`
}

func (c *ValidateCmd) Run(ctx *Context) error {
	doc, store, err := loadFile(c.File)
	if store == nil {
		return err
	}

	violations := domain.Violations(err)
	for _, v := range violations {
		fmt.Fprintf(ctx.Out, "%s %s\n", red("✗"), v)
	}

	warnings := store.Audit()
	for _, w := range warnings {
		fmt.Fprintf(ctx.Out, "%s %s\n", yellow("!"), w)
	}

	stats := store.Stats()
	fmt.Fprintf(ctx.Out, "%s revision %s: %d sections, %d groups, %d links, %d nav items\n",
		bold(c.File), doc.Revision, stats.Sections, stats.Groups, stats.Leaves, stats.NavItems)

	switch {
	case len(violations) > 0:
		fmt.Fprintf(ctx.Out, "%s %d violation(s), %d warning(s)\n", red("invalid:"), len(violations), len(warnings))
		return ErrInvalid
	case c.Strict && len(warnings) > 0:
		fmt.Fprintf(ctx.Out, "%s %d warning(s) in strict mode\n", red("invalid:"), len(warnings))
		return ErrInvalid
	default:
		fmt.Fprintf(ctx.Out, "%s %d warning(s)\n", green("valid:"), len(warnings))
		return nil
	}
}
