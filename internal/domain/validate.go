package domain

import (
	"fmt"
	"strings"
)

// Validate walks every section and the nav sequence and returns all
// violations found. It never stops at the first one.
//
// An empty result means the store may be published. Refusing to build on a
// non-empty result is the caller's decision.
func (s *Store) Validate() []error {
	var violations []error

	firstSeen := make(map[string]int, len(s.sections))
	for i, sec := range s.sections {
		loc := sectionLocation(sec.Key)

		switch {
		case sec.Key == "":
			violations = append(violations, schemaErr(fmt.Sprintf("sidebar[%d]", i), "key", "is required"))
		case !strings.HasPrefix(sec.Key, "/"):
			violations = append(violations, schemaErr(loc, "key", "must begin with '/'"))
		}

		if first, dup := firstSeen[sec.Key]; dup {
			violations = append(violations, &DuplicateKeyError{Key: sec.Key, First: first, Index: i})
		} else {
			firstSeen[sec.Key] = i
		}

		for j, n := range sec.Groups {
			violations = validateNode(violations, fmt.Sprintf("%s[%d]", loc, j), n)
		}
	}

	for i, e := range s.nav {
		violations = validateNav(violations, fmt.Sprintf("nav[%d]", i), e)
	}

	return violations
}

func validateNode(violations []error, loc string, n Node) []error {
	if n.Shorthand {
		switch {
		case n.Slug == "":
			violations = append(violations, schemaErr(loc, "slug", "must not be empty"))
		case strings.HasPrefix(n.Slug, "/"):
			violations = append(violations, schemaErr(loc, "slug", "must be relative (no leading '/')"))
		}
		return violations
	}

	if n.Title == "" {
		violations = append(violations, schemaErr(loc, "title", "is required"))
	}

	if n.IsLeaf() {
		return violations
	}

	switch {
	case n.Link != "":
		violations = append(violations, schemaErr(loc, "path", "must not be set together with children"))
	case len(n.Children) == 0:
		violations = append(violations, schemaErr(loc, "children", "or path is required"))
	}

	for i, c := range n.Children {
		violations = validateNode(violations, fmt.Sprintf("%s.children[%d]", loc, i), c)
	}
	return violations
}

func validateNav(violations []error, loc string, e NavEntry) []error {
	if e.Text == "" {
		violations = append(violations, schemaErr(loc, "text", "is required"))
	}

	switch {
	case e.Link != "" && e.Items != nil:
		violations = append(violations, schemaErr(loc, "link", "must not be set together with items"))
	case e.Link == "" && len(e.Items) == 0:
		violations = append(violations, schemaErr(loc, "items", "or link is required"))
	}

	for i, item := range e.Items {
		violations = validateNav(violations, fmt.Sprintf("%s.items[%d]", loc, i), item)
	}
	return violations
}

func validSectionKey(key string) bool {
	return strings.HasPrefix(key, "/")
}
