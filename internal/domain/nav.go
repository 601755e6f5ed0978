package domain

// Site holds the site-wide metadata that accompanies the navigation.
type Site struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// Base is the deployment base path (ex: "/blog/"). Empty means "/".
	Base string `json:"base,omitempty"`

	Repo        string `json:"repo,omitempty"`
	DocsDir     string `json:"docs_dir,omitempty"`
	DocsBranch  string `json:"docs_branch,omitempty"`
	EditLinks   bool   `json:"edit_links,omitempty"`
	LastUpdated string `json:"last_updated,omitempty"`
}

// RawNavEntry is a top-bar entry as authored.
// Items is nil when the key is absent.
type RawNavEntry struct {
	Text  string
	Link  string
	Items []RawNavEntry
}

// NavEntry is one top navigation bar item: either a direct link
// or a drop-down of sub-items.
type NavEntry struct {
	Text  string     `json:"text"`
	Link  string     `json:"link,omitempty"`
	Items []NavEntry `json:"items,omitempty"`
}

// IsDropdown reports whether the entry holds sub-items.
func (e NavEntry) IsDropdown() bool { return e.Items != nil }

func normalizeNav(raw []RawNavEntry) []NavEntry {
	if raw == nil {
		return nil
	}
	entries := make([]NavEntry, 0, len(raw))
	for _, r := range raw {
		entries = append(entries, NavEntry{
			Text:  r.Text,
			Link:  r.Link,
			Items: normalizeNav(r.Items),
		})
	}
	return entries
}
