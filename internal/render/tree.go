// Package render draws navigation stores as plain text trees for terminals
// and the /tree endpoint.
package render

import (
	"fmt"
	"io"

	"github.com/ddddddO/gtree"

	"github.com/MrSnakeDoc/sidenav/internal/domain"
)

// Section writes one sidebar section as a tree rooted at its key.
func Section(w io.Writer, sec domain.Section) error {
	root := gtree.NewRoot(sec.Key)
	addNodes(root, sec.Groups)
	return gtree.OutputFromRoot(w, root)
}

// Sidebar writes every section under a single root named after the site.
func Sidebar(w io.Writer, store *domain.Store) error {
	root := gtree.NewRoot(siteLabel(store.Site()))
	seen := siblings{}
	for _, sec := range store.Sections() {
		addNodes(root.Add(seen.label(sec.Key)), sec.Groups)
	}
	return gtree.OutputFromRoot(w, root)
}

// Nav writes the top navigation bar.
func Nav(w io.Writer, store *domain.Store) error {
	root := gtree.NewRoot(siteLabel(store.Site()))
	addNav(root, store.Nav())
	return gtree.OutputFromRoot(w, root)
}

func addNodes(parent *gtree.Node, nodes []domain.Node) {
	seen := siblings{}
	for _, n := range nodes {
		child := parent.Add(seen.label(nodeLabel(n)))
		if !n.IsLeaf() {
			addNodes(child, n.Children)
		}
	}
}

func addNav(parent *gtree.Node, entries []domain.NavEntry) {
	seen := siblings{}
	for _, e := range entries {
		child := parent.Add(seen.label(navLabel(e)))
		addNav(child, e.Items)
	}
}

// siblings numbers repeated labels under one parent. gtree merges siblings
// with identical text, which would fold two groups into one node.
type siblings map[string]int

func (s siblings) label(text string) string {
	s[text]++
	if n := s[text]; n > 1 {
		return fmt.Sprintf("%s #%d", text, n)
	}
	return text
}

// Leaf labels carry the link so distinct pages never share a label.
func nodeLabel(n domain.Node) string {
	switch {
	case n.Shorthand:
		return n.Link
	case n.IsLeaf():
		return fmt.Sprintf("%s (%s)", orPlaceholder(n.Title), n.Link)
	case !n.Collapsible:
		return orPlaceholder(n.Title) + " [expanded]"
	default:
		return orPlaceholder(n.Title)
	}
}

func navLabel(e domain.NavEntry) string {
	if e.IsDropdown() {
		return orPlaceholder(e.Text)
	}
	return fmt.Sprintf("%s (%s)", orPlaceholder(e.Text), e.Link)
}

func siteLabel(site domain.Site) string {
	if site.Title != "" {
		return site.Title
	}
	return "sidebar"
}

func orPlaceholder(s string) string {
	if s == "" {
		return "<untitled>"
	}
	return s
}
