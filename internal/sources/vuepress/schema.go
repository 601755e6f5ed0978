package vuepress

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// File represents the top-level structure of the navigation file.
//
//	site:    { title, description, base, ... }
//	nav:     [ { text, link } | { text, items: [...] } ]
//	sidebar: { "/section/": [ group, ... ], ... }
type File struct {
	Site    SiteSchema    `yaml:"site"`
	Nav     NavList       `yaml:"nav"`
	Sidebar SidebarSchema `yaml:"sidebar"`
}

// SiteSchema holds the site metadata block.
type SiteSchema struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Base        string `yaml:"base"`
	Repo        string `yaml:"repo"`
	DocsDir     string `yaml:"docsDir"`
	DocsBranch  string `yaml:"docsBranch"`
	EditLinks   bool   `yaml:"editLinks"`
	LastUpdated string `yaml:"lastUpdated"`
}

// NavSchema is one top-bar entry.
type NavSchema struct {
	Text  string      `yaml:"text"`
	Link  string      `yaml:"link,omitempty"`
	Items NavList `yaml:"items,omitempty"`
}

// SidebarSchema keeps sections in file order.
// A plain map would lose ordering and reject repeated keys before they can
// be reported, so the mapping node is walked by hand.
type SidebarSchema []SectionSchema

// SectionSchema is one "key: [groups]" pair of the sidebar mapping.
type SectionSchema struct {
	Key    string
	Groups []GroupSchema
}

// GroupSchema is a sidebar group as written in YAML.
// "collapsable" is the spelling used by older VuePress configs.
type GroupSchema struct {
	Title       string        `yaml:"title"`
	Collapsible *bool         `yaml:"collapsible,omitempty"`
	Collapsable *bool         `yaml:"collapsable,omitempty"`
	Path        string        `yaml:"path,omitempty"`
	Children    ChildList     `yaml:"children,omitempty"`
}

// ChildSchema is either a bare slug string or a nested group.
type ChildSchema struct {
	Slug  string
	Group *GroupSchema
}

// UnmarshalYAML decodes the sidebar mapping while preserving order and duplicates.
func (s *SidebarSchema) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: sidebar must be a mapping of section path to groups", value.Line)
	}

	sections := make(SidebarSchema, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, groupsNode := value.Content[i], value.Content[i+1]

		var groups GroupList
		if err := groupsNode.Decode(&groups); err != nil {
			return fmt.Errorf("line %d: sidebar[%q]: %w", groupsNode.Line, keyNode.Value, err)
		}
		sections = append(sections, SectionSchema{Key: keyNode.Value, Groups: groups})
	}

	*s = sections
	return nil
}

// UnmarshalYAML accepts a scalar (slug) or a mapping (nested group).
func (c *ChildSchema) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		c.Slug = value.Value
		return nil
	case yaml.MappingNode:
		var g GroupSchema
		if err := value.Decode(&g); err != nil {
			return err
		}
		c.Group = &g
		return nil
	default:
		return fmt.Errorf("line %d: sidebar child must be a string or a group", value.Line)
	}
}

// NavList, GroupList and ChildList decode a YAML sequence item by item.
// yaml.v3 drops null items when filling a slice directly; here a null item
// becomes a zero entry, group or slug so validation reports it.
type (
	NavList   []NavSchema
	GroupList []GroupSchema
	ChildList []ChildSchema
)

func (l *NavList) UnmarshalYAML(value *yaml.Node) error {
	items, err := decodeSequence[NavSchema](value, "nav entries")
	*l = items
	return err
}

func (l *GroupList) UnmarshalYAML(value *yaml.Node) error {
	items, err := decodeSequence[GroupSchema](value, "sidebar groups")
	*l = items
	return err
}

func (l *ChildList) UnmarshalYAML(value *yaml.Node) error {
	items, err := decodeSequence[ChildSchema](value, "sidebar children")
	*l = items
	return err
}

func decodeSequence[T any](value *yaml.Node, what string) ([]T, error) {
	if value.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: %s must be a list", value.Line, what)
	}
	items := make([]T, 0, len(value.Content))
	for _, node := range value.Content {
		var item T
		if node.ShortTag() != "!!null" {
			if err := node.Decode(&item); err != nil {
				return nil, err
			}
		}
		items = append(items, item)
	}
	return items, nil
}
