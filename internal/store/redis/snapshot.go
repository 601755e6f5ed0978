package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultSnapshotTTL bounds how long an unreferenced snapshot survives (90 days)
	DefaultSnapshotTTL = 90 * 24 * time.Hour
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrSnapshotNotFound is returned when a revision is not stored.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot is the persisted form of a published revision: the exact bytes of
// the navigation file that produced it, so a restart can rebuild the store
// even when the file on disk has since been broken.
type Snapshot struct {
	ID       string    `json:"id"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loaded_at"`
	Data     []byte    `json:"data"`
}

// Store handles Redis operations for navigation snapshots
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// SaveSnapshot stores a snapshot and marks it as the last-known-good revision.
func (s *Store) SaveSnapshot(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, RevisionKey(snap.ID), data, DefaultSnapshotTTL)
	pipe.ZAdd(ctx, KeyRevisions, redis.Z{
		Score:  float64(snap.LoadedAt.Unix()),
		Member: snap.ID,
	})
	pipe.Set(ctx, KeyCurrent, snap.ID, 0)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// GetSnapshot retrieves a snapshot by revision ID
func (s *Store) GetSnapshot(ctx context.Context, id string) (*Snapshot, error) {
	data, err := s.client.Get(ctx, RevisionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

// CurrentSnapshot returns the last-known-good snapshot, or ErrSnapshotNotFound.
func (s *Store) CurrentSnapshot(ctx context.Context) (*Snapshot, error) {
	id, err := s.client.Get(ctx, KeyCurrent).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to get current revision: %w", err)
	}
	return s.GetSnapshot(ctx, id)
}

// ListRevisions returns stored revision IDs, newest first.
func (s *Store) ListRevisions(ctx context.Context) ([]string, error) {
	ids, err := s.client.ZRevRange(ctx, KeyRevisions, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list revisions: %w", err)
	}
	return ids, nil
}

// ScanRevisionIDs walks the keyspace for snapshot keys, including ones that
// fell out of the revisions set (a failed pipeline or a manual ZREM).
func (s *Store) ScanRevisionIDs(ctx context.Context) ([]string, error) {
	var ids []string
	iter := s.client.Scan(ctx, 0, KeyPrefixRevision+"*", 100).Iterator()
	for iter.Next(ctx) {
		id, err := ExtractRevisionID(iter.Val())
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan snapshot keys: %w", err)
	}
	return ids, nil
}

// DeleteSnapshot removes a snapshot from Redis
func (s *Store) DeleteSnapshot(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, RevisionKey(id))
	pipe.ZRem(ctx, KeyRevisions, id)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// Ping checks connectivity for status endpoints.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
