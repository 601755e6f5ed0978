package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/MrSnakeDoc/sidenav/internal/domain"
	"github.com/MrSnakeDoc/sidenav/internal/index"
	"github.com/MrSnakeDoc/sidenav/internal/logger"
	"github.com/MrSnakeDoc/sidenav/internal/metrics"
	"github.com/MrSnakeDoc/sidenav/internal/sources/vuepress"
	redisstore "github.com/MrSnakeDoc/sidenav/internal/store/redis"
)

// ErrRejected marks a reload whose file parsed but failed validation.
// The previous revision stays active.
var ErrRejected = errors.New("navigation revision rejected")

// NavReloader handles periodic reloading of the navigation file
type NavReloader struct {
	loader        *vuepress.Loader
	mapper        *vuepress.Mapper
	store         *redisstore.Store // nil when redis is disabled
	index         *index.RevisionIndex
	metrics       *metrics.Metrics
	logger        logger.Logger
	interval      time.Duration
	manualTrigger chan struct{}

	mu       sync.Mutex // serializes Reload
	stopCh   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewNavReloader creates a new navigation reloader
func NewNavReloader(
	navFile string,
	store *redisstore.Store,
	idx *index.RevisionIndex,
	m *metrics.Metrics,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *NavReloader {
	return &NavReloader{
		loader:        vuepress.NewLoader(navFile),
		mapper:        vuepress.NewMapper(),
		store:         store,
		index:         idx,
		metrics:       m,
		logger:        log.With(logger.String("component", "reloader")),
		interval:      interval,
		manualTrigger: manualTrigger,
		stopCh:        make(chan struct{}),
		done:          make(chan struct{}),
	}
}

// Start loads the file once and then reloads it on every tick or manual trigger.
// A failing initial load is only fatal when no revision was restored earlier.
func (nr *NavReloader) Start(ctx context.Context) error {
	if err := nr.Reload(ctx); err != nil {
		if nr.index.Current() == nil {
			close(nr.done)
			return fmt.Errorf("initial reload failed: %w", err)
		}
		nr.logger.Warn("initial reload failed, serving restored revision",
			logger.String("revision", nr.index.Current().ID),
			logger.Error(err))
	}

	ticker := time.NewTicker(nr.interval)
	go func() {
		defer close(nr.done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := nr.Reload(ctx); err != nil {
					nr.logger.Error("failed to reload navigation", logger.Error(err))
				}
			case <-nr.manualTrigger:
				nr.logger.Info("manual reload triggered")
				if err := nr.Reload(ctx); err != nil {
					nr.logger.Error("failed to reload navigation", logger.Error(err))
				}
			case <-nr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader and waits for its loop to exit.
func (nr *NavReloader) Stop() {
	nr.stopOnce.Do(func() { close(nr.stopCh) })
	<-nr.done
}

// Reload reads the navigation file and publishes it when it is new and valid.
func (nr *NavReloader) Reload(ctx context.Context) error {
	nr.mu.Lock()
	defer nr.mu.Unlock()

	nr.logger.Debug("reloading navigation", logger.String("file", nr.loader.Path()))

	doc, err := nr.loader.Load()
	if err != nil {
		return nr.fail(metrics.ReloadFailed, 0, err)
	}

	if cur := nr.index.Current(); cur != nil && cur.ID == doc.Revision {
		nr.logger.Debug("navigation unchanged", logger.String("revision", doc.Revision))
		nr.index.ClearFailure()
		nr.metrics.ObserveReload(metrics.ReloadUnchanged, 0)
		return nil
	}

	raw, err := nr.mapper.MapConfig(doc.File)
	if err != nil {
		return nr.fail(metrics.ReloadFailed, 0, err)
	}

	store, err := domain.Load(raw)
	if err != nil {
		violations := multierr.Errors(err)
		for _, v := range violations {
			nr.logger.Warn("navigation violation",
				logger.String("revision", doc.Revision),
				logger.Error(v))
		}
		return nr.fail(metrics.ReloadRejected, len(violations),
			fmt.Errorf("%w: revision %s has %d violation(s): %w", ErrRejected, doc.Revision, len(violations), err))
	}

	rev := &index.Revision{
		ID:       doc.Revision,
		Store:    store,
		LoadedAt: time.Now(),
		Source:   "file",
	}
	evicted := nr.index.Publish(rev)
	nr.metrics.ObserveReload(metrics.ReloadApplied, 0)
	nr.observeIndex(store)

	for _, w := range store.Audit() {
		nr.logger.Warn("navigation warning",
			logger.String("location", w.Location),
			logger.String("message", w.Message))
	}

	stats := store.Stats()
	nr.logger.Info("navigation published",
		logger.String("revision", rev.ID),
		logger.Int("sections", stats.Sections),
		logger.Int("leaves", stats.Leaves),
		logger.Int("nav_items", stats.NavItems))

	nr.persist(ctx, rev, doc.Data, evicted)
	return nil
}

// persist saves the published revision to redis (best effort).
func (nr *NavReloader) persist(ctx context.Context, rev *index.Revision, data []byte, evicted []*index.Revision) {
	if nr.store == nil {
		return
	}

	snap := &redisstore.Snapshot{
		ID:       rev.ID,
		Source:   nr.loader.Path(),
		LoadedAt: rev.LoadedAt,
		Data:     data,
	}
	if err := nr.store.SaveSnapshot(ctx, snap); err != nil {
		// Memory index is the primary source
		nr.logger.Warn("failed to save snapshot to redis", logger.Error(err))
		return
	}

	for _, old := range evicted {
		if err := nr.store.DeleteSnapshot(ctx, old.ID); err != nil {
			nr.logger.Warn("failed to delete evicted snapshot",
				logger.String("revision", old.ID),
				logger.Error(err))
		}
	}
}

func (nr *NavReloader) fail(result string, violations int, err error) error {
	nr.index.RecordFailure(err)
	nr.metrics.ObserveReload(result, violations)
	return err
}

func (nr *NavReloader) observeIndex(store *domain.Store) {
	if nr.metrics == nil {
		return
	}
	nr.metrics.Sections.Set(float64(len(store.Sections())))
	nr.metrics.Revisions.Set(float64(nr.index.Count()))
}
