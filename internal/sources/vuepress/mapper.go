package vuepress

import (
	"fmt"

	"github.com/MrSnakeDoc/sidenav/internal/domain"
)

// Mapper converts the navigation file schema to domain.RawConfig
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapConfig converts a parsed File into the raw configuration consumed by domain.Load.
// Structural problems are left for domain validation; only a file with
// nothing in it is rejected here.
func (m *Mapper) MapConfig(file File) (domain.RawConfig, error) {
	if len(file.Nav) == 0 && len(file.Sidebar) == 0 {
		return domain.RawConfig{}, fmt.Errorf("nav file defines neither nav nor sidebar")
	}

	raw := domain.RawConfig{
		Site: domain.Site{
			Title:       file.Site.Title,
			Description: file.Site.Description,
			Base:        file.Site.Base,
			Repo:        file.Site.Repo,
			DocsDir:     file.Site.DocsDir,
			DocsBranch:  file.Site.DocsBranch,
			EditLinks:   file.Site.EditLinks,
			LastUpdated: file.Site.LastUpdated,
		},
		Nav:     mapNav(file.Nav),
		Sidebar: make([]domain.RawSection, 0, len(file.Sidebar)),
	}

	for _, sec := range file.Sidebar {
		groups := make([]domain.RawGroup, 0, len(sec.Groups))
		for _, g := range sec.Groups {
			groups = append(groups, mapGroup(g))
		}
		raw.Sidebar = append(raw.Sidebar, domain.RawSection{Key: sec.Key, Groups: groups})
	}

	return raw, nil
}

func mapNav(entries []NavSchema) []domain.RawNavEntry {
	if entries == nil {
		return nil
	}
	out := make([]domain.RawNavEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.RawNavEntry{
			Text:  e.Text,
			Link:  e.Link,
			Items: mapNav(e.Items),
		})
	}
	return out
}

func mapGroup(g GroupSchema) domain.RawGroup {
	collapsible := g.Collapsible
	if collapsible == nil {
		collapsible = g.Collapsable
	}

	group := domain.RawGroup{
		Title:       g.Title,
		Collapsible: collapsible,
		Path:        g.Path,
	}

	// Keep nil vs empty: "children: []" next to a path is still a conflict.
	if g.Children != nil {
		group.Children = make([]domain.RawChild, 0, len(g.Children))
		for _, c := range g.Children {
			if c.Group != nil {
				group.Children = append(group.Children, domain.Sub(mapGroup(*c.Group)))
				continue
			}
			group.Children = append(group.Children, domain.Slug(c.Slug))
		}
	}

	return group
}
