package domain

import (
	"fmt"
	"strings"
)

// SectionFor returns the section whose key is the longest prefix of requestPath.
//
// Keys may nest (ex: "/web/" and "/web/javascript/"), so the most specific
// one wins. A request equal to a key without its trailing slash also matches
// that key. Returns an error wrapping ErrNotFound when nothing matches.
//
// Examples (keys "/web/", "/web/javascript/"):
//   - "/web/javascript/es6" -> "/web/javascript/"
//   - "/web/css/"           -> "/web/"
//   - "/web/javascript"     -> "/web/javascript/"
//   - "/unknown/"           -> ErrNotFound
func (s *Store) SectionFor(requestPath string) (Section, error) {
	for _, i := range s.byLength {
		if matchesKey(requestPath, s.sections[i].Key) {
			return s.sections[i], nil
		}
	}
	return Section{}, fmt.Errorf("%w: %s", ErrNotFound, requestPath)
}

// matchesKey reports whether key is a path prefix of p.
// Keys without a trailing slash only match on a segment boundary.
func matchesKey(p, key string) bool {
	if strings.HasSuffix(key, "/") {
		return strings.HasPrefix(p, key) || p == strings.TrimSuffix(key, "/")
	}
	if !strings.HasPrefix(p, key) {
		return false
	}
	return len(p) == len(key) || p[len(key)] == '/'
}
