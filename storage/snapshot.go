// Package storage keeps the history of published configuration snapshots
// in a NATS KV bucket.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360studio/propset/publish"
)

// BucketSnapshots is the KV bucket snapshots are kept in.
const BucketSnapshots = "PROPSET_SNAPSHOTS"

// LatestKey holds the ID of the most recently stored snapshot.
const LatestKey = "latest"

// KeyValue is the part of jetstream.KeyValue the store uses.
type KeyValue interface {
	Get(ctx context.Context, key string) (jetstream.KeyValueEntry, error)
	Put(ctx context.Context, key string, value []byte) (uint64, error)
	Keys(ctx context.Context, opts ...jetstream.WatchOpt) ([]string, error)
}

// Store provides snapshot storage backed by NATS KV.
type Store struct {
	kv KeyValue
}

// NewStore opens the snapshot bucket, creating it if it does not exist.
func NewStore(ctx context.Context, js jetstream.JetStream) (*Store, error) {
	kv, err := getOrCreateBucket(ctx, js, BucketSnapshots)
	if err != nil {
		return nil, fmt.Errorf("create snapshots bucket: %w", err)
	}
	return NewStoreWithKV(kv), nil
}

// NewStoreWithKV wraps an already opened bucket.
func NewStoreWithKV(kv KeyValue) *Store {
	return &Store{kv: kv}
}

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name string) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, name)
	if err == nil {
		return kv, nil
	}
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: "propset configuration snapshots",
		History:     5,
	})
}

// Put stores the snapshot under its ID and marks it as the latest one.
func (s *Store) Put(ctx context.Context, snap *publish.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if _, err := s.kv.Put(ctx, snap.ID, data); err != nil {
		return fmt.Errorf("store snapshot: %w", err)
	}
	if _, err := s.kv.Put(ctx, LatestKey, []byte(snap.ID)); err != nil {
		return fmt.Errorf("update latest snapshot: %w", err)
	}
	return nil
}

// Get retrieves a snapshot by ID.
func (s *Store) Get(ctx context.Context, id string) (*publish.Snapshot, error) {
	if id == LatestKey {
		return s.Latest(ctx)
	}
	entry, err := s.kv.Get(ctx, id)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	var snap publish.Snapshot
	if err := json.Unmarshal(entry.Value(), &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot %s: %w", id, err)
	}
	return &snap, nil
}

// Latest retrieves the most recently stored snapshot.
func (s *Store) Latest(ctx context.Context) (*publish.Snapshot, error) {
	entry, err := s.kv.Get(ctx, LatestKey)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get latest snapshot: %w", err)
	}
	return s.Get(ctx, string(entry.Value()))
}

// List returns all stored snapshots, oldest first.
func (s *Store) List(ctx context.Context) ([]*publish.Snapshot, error) {
	keys, err := s.kv.Keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list snapshot keys: %w", err)
	}

	snaps := make([]*publish.Snapshot, 0, len(keys))
	for _, key := range keys {
		if key == LatestKey {
			continue
		}
		snap, err := s.Get(ctx, key)
		if err != nil {
			continue // Skip entries that fail to load
		}
		snaps = append(snaps, snap)
	}
	sort.SliceStable(snaps, func(i, j int) bool {
		return snaps[i].CreatedAt.Before(snaps[j].CreatedAt)
	})
	return snaps, nil
}
