package cli

import "fmt"

type WhichCmd struct {
	File string   `arg:"" type:"path" help:"Navigation file (YAML or JSON)."`
	Path []string `arg:"" help:"Request paths to resolve."`
}

// Run prints the section key serving each path. Unmatched paths are
// reported and make the command fail once all paths are printed.
func (c *WhichCmd) Run(ctx *Context) error {
	store, err := mustLoad(c.File)
	if err != nil {
		return err
	}

	missing := 0
	for _, p := range c.Path {
		sec, err := store.SectionFor(p)
		if err != nil {
			fmt.Fprintf(ctx.Out, "%s\t%s\n", p, red("-"))
			missing++
			continue
		}
		fmt.Fprintf(ctx.Out, "%s\t%s\n", p, sec.Key)
	}
	if missing > 0 {
		return fmt.Errorf("%d path(s) have no sidebar section", missing)
	}
	return nil
}
