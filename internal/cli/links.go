package cli

import "fmt"

type LinksCmd struct {
	File string `arg:"" type:"path" help:"Navigation file (YAML or JSON)."`
	Base bool   `help:"Prefix internal links with the site base path."`
}

// Run prints one link target per line, sidebar first then nav, for piping
// into link checkers or build tooling.
func (c *LinksCmd) Run(ctx *Context) error {
	store, err := mustLoad(c.File)
	if err != nil {
		return err
	}
	for link := range store.FlattenLinks() {
		if c.Base {
			link = store.Href(link)
		}
		fmt.Fprintln(ctx.Out, link)
	}
	return nil
}
