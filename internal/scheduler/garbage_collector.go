package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MrSnakeDoc/sidenav/internal/index"
	"github.com/MrSnakeDoc/sidenav/internal/logger"
	"github.com/MrSnakeDoc/sidenav/internal/metrics"
	redisstore "github.com/MrSnakeDoc/sidenav/internal/store/redis"
)

const (
	// DefaultRetention is how long a superseded revision is kept
	DefaultRetention = 30 * 24 * time.Hour // 30 days
)

// GarbageCollector prunes superseded revisions from memory and Redis
type GarbageCollector struct {
	store     *redisstore.Store
	index     *index.RevisionIndex
	metrics   *metrics.Metrics
	logger    logger.Logger
	interval  time.Duration
	retention time.Duration
	now       func() time.Time

	stopCh   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewGarbageCollector creates a new garbage collector
func NewGarbageCollector(
	store *redisstore.Store,
	idx *index.RevisionIndex,
	m *metrics.Metrics,
	log logger.Logger,
	interval time.Duration,
	retention time.Duration,
) *GarbageCollector {
	if retention == 0 {
		retention = DefaultRetention
	}

	return &GarbageCollector{
		store:     store,
		index:     idx,
		metrics:   m,
		logger:    log.With(logger.String("component", "gc")),
		interval:  interval,
		retention: retention,
		now:       time.Now,
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start begins the periodic garbage collection process
func (gc *GarbageCollector) Start(ctx context.Context) error {
	// Run immediately on start
	gc.Collect(ctx)

	ticker := time.NewTicker(gc.interval)
	go func() {
		defer close(gc.done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				gc.Collect(ctx)
			case <-gc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the garbage collector and waits for its loop to exit.
func (gc *GarbageCollector) Stop() {
	gc.stopOnce.Do(func() { close(gc.stopCh) })
	<-gc.done
}

// Collect removes superseded revisions older than the retention window and
// returns how many were removed from memory.
func (gc *GarbageCollector) Collect(ctx context.Context) int {
	now := gc.now()
	deleted := 0

	revisions := gc.index.Revisions()
	for i, rev := range revisions {
		// revisions[0] is the active one
		if i == 0 || now.Sub(rev.LoadedAt) < gc.retention {
			continue
		}
		if !gc.index.Delete(rev.ID) {
			continue
		}
		gc.deleteSnapshot(ctx, rev.ID)
		gc.logger.Info("garbage collected revision",
			logger.String("revision", rev.ID),
			logger.String("age", now.Sub(rev.LoadedAt).String()))
		deleted++
	}

	deleted += gc.collectOrphans(ctx, now)

	if deleted > 0 {
		if gc.metrics != nil {
			gc.metrics.RevisionsCollected.Add(float64(deleted))
			gc.metrics.Revisions.Set(float64(gc.index.Count()))
		}
		gc.logger.Info("garbage collection completed", logger.Int("deleted", deleted))
	} else {
		gc.logger.Debug("no revisions to garbage collect")
	}

	return deleted
}

// collectOrphans removes Redis snapshots that are not held in memory and are
// either expired or past the retention window. Snapshot keys missing from the
// revisions set are found by scanning the keyspace.
func (gc *GarbageCollector) collectOrphans(ctx context.Context, now time.Time) int {
	if gc.store == nil {
		return 0
	}

	listed, err := gc.store.ListRevisions(ctx)
	if err != nil {
		gc.logger.Warn("failed to list redis revisions", logger.Error(err))
		return 0
	}
	scanned, err := gc.store.ScanRevisionIDs(ctx)
	if err != nil {
		// The sorted set alone still covers snapshots saved normally.
		gc.logger.Warn("failed to scan redis snapshot keys", logger.Error(err))
	}
	ids := mergeIDs(listed, scanned)

	deleted := 0
	for _, id := range ids {
		if _, ok := gc.index.Get(id); ok {
			continue
		}
		snap, err := gc.store.GetSnapshot(ctx, id)
		switch {
		case errors.Is(err, redisstore.ErrSnapshotNotFound):
		case err != nil:
			gc.logger.Warn("failed to read snapshot", logger.String("revision", id), logger.Error(err))
			continue
		case now.Sub(snap.LoadedAt) < gc.retention:
			continue
		}
		gc.deleteSnapshot(ctx, id)
		deleted++
	}
	return deleted
}

func (gc *GarbageCollector) deleteSnapshot(ctx context.Context, id string) {
	if gc.store == nil {
		return
	}
	if err := gc.store.DeleteSnapshot(ctx, id); err != nil {
		gc.logger.Warn("failed to delete snapshot from redis",
			logger.String("revision", id),
			logger.Error(err))
	}
}

// mergeIDs appends the IDs of b not already in a, keeping order.
func mergeIDs(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, id := range list {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}
