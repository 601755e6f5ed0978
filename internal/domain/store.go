package domain

import (
	"cmp"
	"slices"

	"go.uber.org/multierr"
)

// Store is the validated, read-only navigation tree handed to the site generator.
//
// It is built once by Load and never mutated afterwards, so any number of
// goroutines may query it without coordination. The store is passed
// explicitly to its consumers; there is no package-level instance.
type Store struct {
	site     Site
	nav      []NavEntry
	sections []Section     // declaration order, duplicates kept for Validate
	firstIdx map[string]int // key -> index of first declaration
	byLength []int          // indices of resolvable sections, longest key first
}

// Load builds a store from raw configuration.
//
// The store is always returned, even when the configuration is invalid, so
// callers can inspect it. The error aggregates every violation found by
// Validate; use errors.As to reach *SchemaError or *DuplicateKeyError.
func Load(raw RawConfig) (*Store, error) {
	s := &Store{
		site:     raw.Site,
		nav:      normalizeNav(raw.Nav),
		sections: make([]Section, 0, len(raw.Sidebar)),
		firstIdx: make(map[string]int, len(raw.Sidebar)),
	}

	for i, rs := range raw.Sidebar {
		s.sections = append(s.sections, normalizeSection(rs))
		if _, seen := s.firstIdx[rs.Key]; !seen {
			s.firstIdx[rs.Key] = i
			if validSectionKey(rs.Key) {
				s.byLength = append(s.byLength, i)
			}
		}
	}

	// Stable sort keeps declaration order among keys of equal length.
	slices.SortStableFunc(s.byLength, func(a, b int) int {
		return cmp.Compare(len(s.sections[b].Key), len(s.sections[a].Key))
	})

	return s, multierr.Combine(s.Validate()...)
}

// Err returns the combined validation error, or nil for a valid store.
func (s *Store) Err() error {
	return multierr.Combine(s.Validate()...)
}

// Site returns the site metadata.
func (s *Store) Site() Site { return s.site }

// Nav returns the top navigation entries. The slice must not be modified.
func (s *Store) Nav() []NavEntry { return s.nav }

// Sections returns every declared section in order, including repeated keys.
// The slice must not be modified.
func (s *Store) Sections() []Section { return s.sections }

// Keys returns the distinct section keys in declaration order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.firstIdx))
	for i, sec := range s.sections {
		if s.firstIdx[sec.Key] == i {
			keys = append(keys, sec.Key)
		}
	}
	return keys
}

// Section returns the section declared with exactly this key.
func (s *Store) Section(key string) (Section, bool) {
	i, ok := s.firstIdx[key]
	if !ok {
		return Section{}, false
	}
	return s.sections[i], true
}

// Stats summarises the store for logs and status endpoints.
type Stats struct {
	Sections int
	Groups   int
	Leaves   int
	NavItems int
}

// Stats counts sections, groups, leaves and nav entries.
func (s *Store) Stats() Stats {
	st := Stats{Sections: len(s.firstIdx)}
	var walk func(nodes []Node)
	walk = func(nodes []Node) {
		for _, n := range nodes {
			if n.IsLeaf() {
				st.Leaves++
				continue
			}
			st.Groups++
			walk(n.Children)
		}
	}
	for _, sec := range s.sections {
		walk(sec.Groups)
	}
	var walkNav func(entries []NavEntry)
	walkNav = func(entries []NavEntry) {
		for _, e := range entries {
			st.NavItems++
			walkNav(e.Items)
		}
	}
	walkNav(s.nav)
	return st
}
