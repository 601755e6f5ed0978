package vuepress

import (
	"errors"
	"testing"

	"github.com/MrSnakeDoc/sidenav/internal/domain"
)

// The shipped sample must stay loadable.
func TestSampleConfig(t *testing.T) {
	doc, err := NewLoader("../../../configs/nav.yaml").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	raw, err := NewMapper().MapConfig(doc.File)
	if err != nil {
		t.Fatalf("MapConfig() error = %v", err)
	}
	store, err := domain.Load(raw)
	if err != nil {
		t.Fatalf("sample config has violations: %v", err)
	}

	if got := len(store.Keys()); got != 11 {
		t.Errorf("sections = %d, want 11", got)
	}
	if store.Site().Base != "/blog/" {
		t.Errorf("Site.Base = %q, want /blog/", store.Site().Base)
	}

	sec, err := store.SectionFor("/web/javascript/Chapter-05-Statements")
	if err != nil || sec.Key != "/web/javascript/" {
		t.Errorf("SectionFor() = %q, %v", sec.Key, err)
	}
	if _, err := store.SectionFor("/web/webpack/"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("SectionFor(/web/webpack/) error = %v, want ErrNotFound", err)
	}

	// /tech/npm/ has no nav entry; four nav links have no sidebar.
	if got := len(store.Audit()); got != 5 {
		t.Errorf("Audit() = %d warnings, want 5: %v", got, store.Audit())
	}

	swift, _ := store.Section("/iOS/Swift/")
	index := swift.Groups[0].Children[0]
	if !index.IsLeaf() || index.Title != "介绍" || index.Link != "/iOS/Swift/" {
		t.Errorf("section index leaf = %+v", index)
	}
}
