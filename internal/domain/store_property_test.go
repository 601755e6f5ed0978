package domain

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

var slugGen = rapid.StringMatching(`[a-z][a-z0-9_-]{0,10}`)

// genGroup draws a valid group: titled, with either a path or a
// non-empty list of slugs and nested groups.
func genGroup(t *rapid.T, key string, depth int, label string) RawGroup {
	g := RawGroup{Title: rapid.StringMatching(`[A-Za-z][A-Za-z ]{0,12}`).Draw(t, label+".title")}
	if rapid.Bool().Draw(t, label+".collapsibleSet") {
		c := rapid.Bool().Draw(t, label+".collapsible")
		g.Collapsible = &c
	}

	if depth >= 3 || rapid.Bool().Draw(t, label+".leaf") {
		g.Path = ResolveSlug(key, slugGen.Draw(t, label+".path"))
		return g
	}

	n := rapid.IntRange(1, 4).Draw(t, label+".n")
	for i := 0; i < n; i++ {
		childLabel := fmt.Sprintf("%s.%d", label, i)
		if rapid.Bool().Draw(t, childLabel+".nested") {
			g.Children = append(g.Children, Sub(genGroup(t, key, depth+1, childLabel)))
			continue
		}
		g.Children = append(g.Children, Slug(slugGen.Draw(t, childLabel+".slug")))
	}
	return g
}

// genConfig draws distinct section keys. Some keys are nested under an
// earlier one (/a/ then /a/b/) so both compete for the same request paths.
func genConfig(t *rapid.T) RawConfig {
	var raw RawConfig
	var keys []string
	seen := map[string]bool{}

	n := rapid.IntRange(0, 6).Draw(t, "sections")
	for i := 0; i < n; i++ {
		key := "/" + slugGen.Draw(t, fmt.Sprintf("key%d", i)) + "/"
		if len(keys) > 0 && rapid.Bool().Draw(t, fmt.Sprintf("nested%d", i)) {
			parent := rapid.SampledFrom(keys).Draw(t, fmt.Sprintf("parent%d", i))
			key = parent + slugGen.Draw(t, fmt.Sprintf("child%d", i)) + "/"
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)

		sec := RawSection{Key: key}
		groups := rapid.IntRange(1, 3).Draw(t, fmt.Sprintf("groups%d", i))
		for j := 0; j < groups; j++ {
			sec.Groups = append(sec.Groups, genGroup(t, key, 1, fmt.Sprintf("s%d.g%d", i, j)))
		}
		raw.Sidebar = append(raw.Sidebar, sec)
		raw.Nav = append(raw.Nav, RawNavEntry{Text: strings.Trim(key, "/"), Link: key})
	}
	return raw
}

func TestProperty_ValidConfigsLoadClean(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := genConfig(t)

		store, err := Load(raw)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if v := store.Validate(); len(v) != 0 {
			t.Fatalf("Validate() = %v, want none", v)
		}
	})
}

func TestProperty_ExactlyOneOfPathOrChildren(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		store, err := Load(genConfig(t))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		var check func(nodes []Node)
		check = func(nodes []Node) {
			for _, n := range nodes {
				hasLink := n.Link != ""
				hasChildren := len(n.Children) > 0
				if hasLink == hasChildren {
					t.Fatalf("node %q: link=%v children=%v", n.Title, hasLink, hasChildren)
				}
				if n.IsLeaf() != hasLink {
					t.Fatalf("node %q: kind %s does not match link presence", n.Title, n.Kind)
				}
				check(n.Children)
			}
		}
		for _, sec := range store.Sections() {
			check(sec.Groups)
		}
	})
}

func TestProperty_FlattenLinksCountsLeavesAndIsRepeatable(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		store, err := Load(genConfig(t))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		first := slices.Collect(store.FlattenLinks())
		second := slices.Collect(store.FlattenLinks())
		if !slices.Equal(first, second) {
			t.Fatalf("FlattenLinks() not repeatable: %v vs %v", first, second)
		}

		st := store.Stats()
		if want := st.Leaves + len(store.Nav()); len(first) != want {
			t.Fatalf("FlattenLinks() yielded %d links, want %d", len(first), want)
		}
	})
}

func TestProperty_SectionForReturnsLongestMatchingKey(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := genConfig(t)
		store, err := Load(raw)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		for link := range store.FlattenLinks() {
			sec, err := store.SectionFor(link)
			if err != nil {
				t.Fatalf("SectionFor(%q) error = %v", link, err)
			}
			for _, k := range store.Keys() {
				if matchesKey(link, k) && len(k) > len(sec.Key) {
					t.Fatalf("SectionFor(%q) = %q, but %q is longer", link, sec.Key, k)
				}
			}
		}
	})
}

func TestProperty_NestedKeyWinsOverParent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		store, err := Load(genConfig(t))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		keys := store.Keys()
		for _, child := range keys {
			for _, parent := range keys {
				if parent == child || !strings.HasPrefix(child, parent) {
					continue
				}
				page := child + "page"
				sec, err := store.SectionFor(page)
				if err != nil {
					t.Fatalf("SectionFor(%q) error = %v", page, err)
				}
				if sec.Key == parent || len(sec.Key) < len(child) {
					t.Fatalf("SectionFor(%q) = %q, want %q or a longer key", page, sec.Key, child)
				}
			}
		}
	})
}
