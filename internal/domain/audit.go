package domain

import "fmt"

// Warning is a non-fatal finding. Warnings never block publication.
type Warning struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

func (w Warning) String() string { return w.Location + ": " + w.Message }

// Audit cross-checks the nav bar against the sidebar:
//   - sections that no nav link leads into
//   - internal nav links (other than the site root) without a sidebar
func (s *Store) Audit() []Warning {
	var warnings []Warning

	var navLinks []string
	var collect func(entries []NavEntry)
	collect = func(entries []NavEntry) {
		for _, e := range entries {
			if e.Link != "" {
				navLinks = append(navLinks, e.Link)
			}
			collect(e.Items)
		}
	}
	collect(s.nav)

	for _, key := range s.Keys() {
		if !validSectionKey(key) {
			continue
		}
		reached := false
		for _, link := range navLinks {
			if matchesKey(link, key) {
				reached = true
				break
			}
		}
		if !reached {
			warnings = append(warnings, Warning{
				Location: sectionLocation(key),
				Message:  "section is not reachable from the navigation bar",
			})
		}
	}

	for _, link := range navLinks {
		if link == "/" || IsExternal(link) {
			continue
		}
		if _, err := s.SectionFor(link); err != nil {
			warnings = append(warnings, Warning{
				Location: fmt.Sprintf("nav link %q", link),
				Message:  "no sidebar section matches this link",
			})
		}
	}

	return warnings
}
