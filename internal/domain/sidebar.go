package domain

import (
	"fmt"
	"strings"
)

// RawConfig is the navigation configuration as authored, before normalization.
// It is produced by a source (see internal/sources/vuepress) and consumed once by Load.
type RawConfig struct {
	Site    Site
	Nav     []RawNavEntry
	Sidebar []RawSection // declaration order, duplicates preserved
}

// RawSection is one sidebar section exactly as declared.
type RawSection struct {
	Key    string
	Groups []RawGroup
}

// RawGroup is a sidebar group before shorthand children are resolved.
// Children is nil when the key is absent, non-nil (possibly empty) when present.
type RawGroup struct {
	Title       string
	Collapsible *bool
	Path        string
	Children    []RawChild
}

// RawChild is either a shorthand slug or a nested group.
type RawChild struct {
	Slug  string
	Group *RawGroup
}

// Slug builds a shorthand child.
func Slug(s string) RawChild { return RawChild{Slug: s} }

// Sub builds a nested group child.
func Sub(g RawGroup) RawChild { return RawChild{Group: &g} }

// NodeKind tags a normalized sidebar node.
type NodeKind int

const (
	KindLeaf NodeKind = iota + 1
	KindGroup
)

func (k NodeKind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind as "leaf" or "group" in JSON payloads.
func (k NodeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Node is one normalized sidebar entry.
//
// A Leaf carries a resolved absolute Link. It has a Title when it came from a
// group with a path, and Shorthand set when it came from a plain slug child.
// A Group carries a Title and ordered Children.
type Node struct {
	Kind        NodeKind `json:"kind"`
	Title       string   `json:"title,omitempty"`
	Link        string   `json:"link,omitempty"`
	Collapsible bool     `json:"collapsible"`
	Children    []Node   `json:"children,omitempty"`

	// ─────────────────────────────
	// Provenance (kept for validation)
	// ─────────────────────────────

	// Shorthand marks a leaf written as a bare slug.
	Shorthand bool `json:"-"`

	// Slug is the slug as written, only set when Shorthand is true.
	Slug string `json:"-"`
}

// IsLeaf reports whether the node is a link leaf.
func (n Node) IsLeaf() bool { return n.Kind == KindLeaf }

// Section is a normalized sidebar section.
type Section struct {
	Key    string `json:"key"`
	Groups []Node `json:"groups"`
}

// normalizeSection converts a raw section into its tagged form.
func normalizeSection(raw RawSection) Section {
	sec := Section{
		Key:    raw.Key,
		Groups: make([]Node, 0, len(raw.Groups)),
	}
	for _, g := range raw.Groups {
		sec.Groups = append(sec.Groups, normalizeGroup(raw.Key, g))
	}
	return sec
}

func normalizeGroup(key string, g RawGroup) Node {
	collapsible := true
	if g.Collapsible != nil {
		collapsible = *g.Collapsible
	}

	// A group with a path and no children list is a titled leaf.
	if g.Children == nil && g.Path != "" {
		return Node{
			Kind:        KindLeaf,
			Title:       g.Title,
			Link:        g.Path,
			Collapsible: collapsible,
		}
	}

	// Anything else stays a group. Link is kept when both fields were set so
	// the conflict is still visible to Validate.
	n := Node{
		Kind:        KindGroup,
		Title:       g.Title,
		Link:        g.Path,
		Collapsible: collapsible,
		Children:    make([]Node, 0, len(g.Children)),
	}
	for _, c := range g.Children {
		if c.Group != nil {
			n.Children = append(n.Children, normalizeGroup(key, *c.Group))
			continue
		}
		n.Children = append(n.Children, Node{
			Kind:      KindLeaf,
			Link:      ResolveSlug(key, c.Slug),
			Shorthand: true,
			Slug:      c.Slug,
		})
	}
	return n
}

// ResolveSlug joins a relative slug onto its section key.
// Example: ("/tech/", "a") -> "/tech/a"
func ResolveSlug(sectionKey, slug string) string {
	return strings.TrimSuffix(sectionKey, "/") + "/" + slug
}

// sectionLocation formats the location of a section for violation messages.
func sectionLocation(key string) string {
	return fmt.Sprintf("sidebar[%q]", key)
}
