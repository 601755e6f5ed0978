package index

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/sidenav/internal/domain"
)

// Revision is one validated navigation store together with its provenance.
type Revision struct {
	ID       string        // content hash of the source file
	Store    *domain.Store // immutable once published
	LoadedAt time.Time
	Source   string // "file" or "redis"
}

// RevisionIndex holds the active navigation store and a bounded history of
// previously published ones. Stores themselves are immutable; the index only
// guards which one is current.
type RevisionIndex struct {
	mu          sync.RWMutex
	history     []*Revision // newest first, history[0] is current
	max         int
	lastReload  time.Time // Timestamp of last successful publish
	lastFailure time.Time // Timestamp of last rejected reload
	failure     error
}

// NewRevisionIndex creates an index keeping at most max revisions.
func NewRevisionIndex(max int) *RevisionIndex {
	if max < 1 {
		max = 1
	}
	return &RevisionIndex{
		history: make([]*Revision, 0, max),
		max:     max,
	}
}

// Publish makes rev the current revision.
// A revision already in history is moved to the front instead of duplicated.
// Returns the revisions evicted to respect the size bound.
func (idx *RevisionIndex) Publish(rev *Revision) []*Revision {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	kept := make([]*Revision, 0, len(idx.history)+1)
	kept = append(kept, rev)
	for _, r := range idx.history {
		if r.ID != rev.ID {
			kept = append(kept, r)
		}
	}

	var evicted []*Revision
	if len(kept) > idx.max {
		evicted = append(evicted, kept[idx.max:]...)
		kept = kept[:idx.max]
	}

	idx.history = kept
	idx.lastReload = time.Now()
	idx.failure = nil
	return evicted
}

// Current returns the active revision, or nil before the first publish.
func (idx *RevisionIndex) Current() *Revision {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(idx.history) == 0 {
		return nil
	}
	return idx.history[0]
}

// Store returns the active store, or nil before the first publish.
func (idx *RevisionIndex) Store() *domain.Store {
	if rev := idx.Current(); rev != nil {
		return rev.Store
	}
	return nil
}

// Get retrieves a revision by ID
func (idx *RevisionIndex) Get(id string) (*Revision, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	for _, r := range idx.history {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// Revisions returns the history, newest first.
func (idx *RevisionIndex) Revisions() []*Revision {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]*Revision, len(idx.history))
	copy(out, idx.history)
	return out
}

// Delete removes a superseded revision. The current revision is never removed.
func (idx *RevisionIndex) Delete(id string) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	for i, r := range idx.history {
		if r.ID != id {
			continue
		}
		if i == 0 {
			return false
		}
		idx.history = append(idx.history[:i], idx.history[i+1:]...)
		return true
	}
	return false
}

// Count returns the number of revisions held
func (idx *RevisionIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.history)
}

// GetLastReload returns the timestamp of the last successful publish
func (idx *RevisionIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}

// RecordFailure remembers why the latest reload was rejected.
func (idx *RevisionIndex) RecordFailure(err error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.failure = err
	idx.lastFailure = time.Now()
}

// LastFailure returns the latest rejection since the last successful publish.
func (idx *RevisionIndex) LastFailure() (time.Time, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastFailure, idx.failure
}

// ClearFailure forgets the latest rejection, used when the file on disk is
// back to the active revision.
func (idx *RevisionIndex) ClearFailure() {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.failure = nil
}
