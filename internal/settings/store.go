package settings

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/zjrosen/bulletdash/internal/log"
	"github.com/zjrosen/bulletdash/internal/pubsub"
)

// Repository persists the settings blob. The store never interprets the
// persisted form beyond Merge.
type Repository interface {
	Load(ctx context.Context) (map[string]any, error)
	Save(ctx context.Context, blob map[string]any) error
}

// Store owns the current snapshot. Readers take Snapshot() at the start of a
// pass; writers replace the snapshot wholesale and publish it.
type Store struct {
	mu      sync.Mutex // serializes writers
	current atomic.Pointer[Settings]
	broker  *pubsub.Broker[Settings]
	repo    Repository
}

// NewStore creates a store seeded with initial.
func NewStore(initial Settings) *Store {
	s := &Store{broker: pubsub.NewRetainingBroker[Settings]()}
	s.current.Store(&initial)
	s.broker.Publish(pubsub.SnapshotEvent, initial)
	return s
}

// Open loads the persisted blob from repo, merges it over Defaults, and
// returns a store that writes back to repo. Rejected entries are reported
// but do not prevent opening.
func Open(ctx context.Context, repo Repository) (*Store, error) {
	blob, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	merged, mergeErr := Merge(Defaults(), blob)
	if mergeErr != nil {
		log.ErrorErr(log.CatSettings, "Rejected persisted settings", mergeErr)
	}
	s := NewStore(merged)
	s.repo = repo
	return s, mergeErr
}

// Snapshot returns the current settings.
func (s *Store) Snapshot() Settings {
	return *s.current.Load()
}

// Apply merges blob over the current snapshot, persists, and publishes.
// Valid keys are applied even when others are rejected.
func (s *Store) Apply(ctx context.Context, blob map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	merged, mergeErr := Merge(s.Snapshot(), blob)
	if err := s.commit(ctx, merged); err != nil {
		return err
	}
	return mergeErr
}

// Reset merges blob over Defaults, discarding earlier overrides.
func (s *Store) Reset(ctx context.Context, blob map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	merged, mergeErr := Merge(Defaults(), blob)
	if err := s.commit(ctx, merged); err != nil {
		return err
	}
	return mergeErr
}

// Set updates one key.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := Set(s.Snapshot(), key, value)
	if err != nil {
		return err
	}
	return s.commit(ctx, next)
}

// Replace swaps in next without persisting. Used when the persisted source
// itself changed (a watched config file) and was already read.
func (s *Store) Replace(next Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publish(next)
}

func (s *Store) commit(ctx context.Context, next Settings) error {
	if next == s.Snapshot() {
		return nil
	}
	if s.repo != nil {
		if err := s.repo.Save(ctx, next.Blob()); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
	}
	s.publish(next)
	return nil
}

func (s *Store) publish(next Settings) {
	s.current.Store(&next)
	s.broker.Publish(pubsub.SnapshotEvent, next)
	log.Debug(log.CatSettings, "Published settings snapshot", "autoFormatting", next.EnableAutoFormatting)
}

// Broker exposes snapshot events; new subscribers receive the current one.
func (s *Store) Broker() *pubsub.Broker[Settings] {
	return s.broker
}

// Subscribe returns a channel of snapshots until ctx is cancelled.
func (s *Store) Subscribe(ctx context.Context) <-chan pubsub.Event[Settings] {
	return s.broker.Subscribe(ctx)
}

// Close releases subscribers.
func (s *Store) Close() {
	s.broker.Close()
}
