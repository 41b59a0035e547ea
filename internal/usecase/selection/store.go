package selection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"catalog-selection/internal/repository"
)

// DefaultStoreKey is the blob key the selection is persisted under.
const DefaultStoreKey = "selectedIds"

// persistTimeout bounds one write-through. It is measured from the write,
// not from the request that caused it.
const persistTimeout = 10 * time.Second

// Store is the single source of truth for selection state: a mapping from
// record id to selected. An absent id is unselected. Deselection writes an
// explicit false, which is equivalent to absence.
//
// Every mutation re-serializes the whole mapping and writes it to the blob
// store while holding the write lock, so readers never observe a partially
// applied batch and the persisted blob always matches memory.
type Store struct {
	mu       sync.RWMutex
	selected map[int64]bool
	blobs    repository.BlobStore
	key      string
}

// NewStore returns an empty store that writes through to blobs under key.
func NewStore(blobs repository.BlobStore, key string) *Store {
	if key == "" {
		key = DefaultStoreKey
	}
	return &Store{
		selected: make(map[int64]bool),
		blobs:    blobs,
		key:      key,
	}
}

// LoadStore creates a store initialised from the blob persisted under key.
// A missing, unreadable or undecodable blob yields an empty store; the
// failure is logged, never returned.
func LoadStore(ctx context.Context, blobs repository.BlobStore, key string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := NewStore(blobs, key)

	blob, err := blobs.Load(ctx, s.key)
	switch {
	case errors.Is(err, repository.ErrBlobNotFound):
		logger.Info("no persisted selection, starting empty", slog.String("key", s.key))
		return s
	case err != nil:
		logger.Warn("failed to load persisted selection, starting empty",
			slog.String("key", s.key),
			slog.Any("error", err))
		return s
	}

	if err := s.Restore(blob); err != nil {
		logger.Warn("persisted selection is corrupt, starting empty",
			slog.String("key", s.key),
			slog.Any("error", err))
		return s
	}

	logger.Info("selection restored",
		slog.String("key", s.key),
		slog.Int("selected", s.SelectedCount()))
	return s
}

// IsSelected reports whether id maps to true.
func (s *Store) IsSelected(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected[id]
}

// SelectedCount returns the number of ids mapped to true.
func (s *Store) SelectedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.countLocked()
}

func (s *Store) countLocked() int {
	n := 0
	for _, v := range s.selected {
		if v {
			n++
		}
	}
	return n
}

// SelectedIDs returns the selected ids in ascending order.
func (s *Store) SelectedIDs() []int64 {
	s.mu.RLock()
	ids := make([]int64, 0, len(s.selected))
	for id, v := range s.selected {
		if v {
			ids = append(ids, id)
		}
	}
	s.mu.RUnlock()

	slices.Sort(ids)
	return ids
}

// lookup reports the selected flag of each id and the total selected count
// from one consistent read.
func (s *Store) lookup(ids []int64) ([]bool, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	flags := make([]bool, len(ids))
	for i, id := range ids {
		flags[i] = s.selected[id]
	}
	return flags, s.countLocked()
}

// SetSelected overwrites the mapping for id. A write-through happens even
// when the value is unchanged.
func (s *Store) SetSelected(ctx context.Context, id int64, value bool) error {
	return s.Update(ctx, func(b *Batch) {
		b.Set(id, value)
	})
}

// SetManySelected sets every id to value as one batch with one write-through.
func (s *Store) SetManySelected(ctx context.Context, ids []int64, value bool) error {
	return s.Update(ctx, func(b *Batch) {
		for _, id := range ids {
			b.Set(id, value)
		}
	})
}

// Batch is the view of the store handed to an Update callback.
// It is only valid inside that callback.
type Batch struct {
	m       map[int64]bool
	changes int
}

// IsSelected reads the store including changes made earlier in this batch.
func (b *Batch) IsSelected(id int64) bool {
	return b.m[id]
}

// Set records id as selected or unselected.
func (b *Batch) Set(id int64, value bool) {
	b.m[id] = value
	b.changes++
}

// Len returns how many Set calls the batch has made.
func (b *Batch) Len() int {
	return b.changes
}

// Update runs fn under the write lock and then writes the whole mapping
// through to the blob store once. fn must not call back into the Store.
//
// If the write-through fails the in-memory changes are kept and the error
// wraps ErrPersist.
func (s *Store) Update(ctx context.Context, fn func(b *Batch)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&Batch{m: s.selected})

	blob, err := json.Marshal(s.selected)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrPersist, err)
	}
	// the caller going away must not leave the blob behind memory
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()
	if err := s.blobs.Save(saveCtx, s.key, blob); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// Serialize encodes the mapping as a JSON object keyed by decimal id,
// e.g. {"27992":true,"28560":false}.
func (s *Store) Serialize() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return json.Marshal(s.selected)
}

// Restore replaces the mapping with the decoded blob. On a decode failure
// the store is reset to empty and the error wraps ErrCorruptBlob.
// Restore does not write through.
func (s *Store) Restore(blob []byte) error {
	decoded := make(map[int64]bool)
	err := json.Unmarshal(blob, &decoded)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.selected = make(map[int64]bool)
		return fmt.Errorf("%w: %w", ErrCorruptBlob, err)
	}
	if decoded == nil {
		// a literal null blob
		decoded = make(map[int64]bool)
	}
	s.selected = decoded
	return nil
}
