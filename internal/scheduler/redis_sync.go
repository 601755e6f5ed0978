package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/sidenav/internal/domain"
	"github.com/MrSnakeDoc/sidenav/internal/index"
	"github.com/MrSnakeDoc/sidenav/internal/logger"
	"github.com/MrSnakeDoc/sidenav/internal/sources/vuepress"
	redisstore "github.com/MrSnakeDoc/sidenav/internal/store/redis"
)

// RedisSyncer restores the last-known-good revision from Redis on startup,
// so a broken file at boot does not leave the service without navigation.
type RedisSyncer struct {
	store  *redisstore.Store
	index  *index.RevisionIndex
	mapper *vuepress.Mapper
	logger logger.Logger
}

// NewRedisSyncer creates a new Redis syncer
func NewRedisSyncer(
	store *redisstore.Store,
	idx *index.RevisionIndex,
	log logger.Logger,
) *RedisSyncer {
	return &RedisSyncer{
		store:  store,
		index:  idx,
		mapper: vuepress.NewMapper(),
		logger: log,
	}
}

// Sync loads the current snapshot from Redis into the revision index
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	rs.logger.Info("restoring navigation from redis")

	snap, err := rs.store.CurrentSnapshot(ctx)
	if errors.Is(err, redisstore.ErrSnapshotNotFound) {
		rs.logger.Info("no snapshot found in redis")
		return nil
	}
	if err != nil {
		return err
	}

	file, err := vuepress.Parse(snap.Data)
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", snap.ID, err)
	}
	raw, err := rs.mapper.MapConfig(file)
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", snap.ID, err)
	}
	store, err := domain.Load(raw)
	if err != nil {
		return fmt.Errorf("snapshot %s is invalid: %w", snap.ID, err)
	}

	rs.index.Publish(&index.Revision{
		ID:       snap.ID,
		Store:    store,
		LoadedAt: snap.LoadedAt,
		Source:   "redis",
	})

	rs.logger.Info("restored navigation from redis",
		logger.String("revision", snap.ID),
		logger.Int("sections", len(store.Sections())))

	return nil
}
