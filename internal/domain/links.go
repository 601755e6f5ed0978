package domain

import (
	"iter"
	"strings"
)

// FlattenLinks yields every link referenced by the store: sidebar leaves
// section by section in declaration order (depth-first), then nav links.
//
// The sequence is a pure function of the stored data: it can be ranged over
// any number of times and has no side effects.
func (s *Store) FlattenLinks() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, sec := range s.sections {
			if !yieldLeaves(sec.Groups, yield) {
				return
			}
		}
		yieldNavLinks(s.nav, yield)
	}
}

func yieldLeaves(nodes []Node, yield func(string) bool) bool {
	for _, n := range nodes {
		if n.IsLeaf() {
			if !yield(n.Link) {
				return false
			}
			continue
		}
		if !yieldLeaves(n.Children, yield) {
			return false
		}
	}
	return true
}

func yieldNavLinks(entries []NavEntry, yield func(string) bool) bool {
	for _, e := range entries {
		if e.Link != "" && !yield(e.Link) {
			return false
		}
		if !yieldNavLinks(e.Items, yield) {
			return false
		}
	}
	return true
}

// Href prefixes an internal link with the site's deployment base.
// External links and relative links are returned unchanged.
// Example: base "/blog/", "/web/vue/" -> "/blog/web/vue/"
func (s *Store) Href(link string) string {
	if IsExternal(link) || !strings.HasPrefix(link, "/") {
		return link
	}
	base := strings.TrimSuffix(s.site.Base, "/")
	return base + link
}

// IsExternal reports whether link points outside the site.
func IsExternal(link string) bool {
	return strings.Contains(link, "://") || strings.HasPrefix(link, "mailto:")
}
