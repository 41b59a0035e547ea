package selection_test

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"catalog-selection/internal/domain/entity"
	"catalog-selection/internal/repository"
)

// memBlobStore is an in-memory repository.BlobStore.
type memBlobStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	saves   int
	loadErr error
	saveErr error
	onSave  func()
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{data: make(map[string][]byte)}
}

func (m *memBlobStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	blob, ok := m.data[key]
	if !ok {
		return nil, repository.ErrBlobNotFound
	}
	return append([]byte(nil), blob...), nil
}

// Save fails on a done context like the SQL blob stores do.
func (m *memBlobStore) Save(ctx context.Context, key string, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.onSave != nil {
		m.onSave()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data[key] = append([]byte(nil), blob...)
	return nil
}

func (m *memBlobStore) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *memBlobStore) blob(key string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key]
}

type fetchCall struct {
	page  int
	limit int
}

// fakeProvider serves a fixed catalog in order with a default page size of 12.
type fakeProvider struct {
	mu      sync.Mutex
	catalog []entity.Record
	err     error
	calls   []fetchCall
	// block, when set, is received from before answering.
	block chan struct{}
}

func newCatalog(n int) []entity.Record {
	records := make([]entity.Record, 0, n)
	for i := 1; i <= n; i++ {
		records = append(records, entity.Record{ID: int64(i), Title: "Artwork"})
	}
	return records
}

func (p *fakeProvider) FetchPage(ctx context.Context, page, limit int) (repository.Page, error) {
	p.mu.Lock()
	p.calls = append(p.calls, fetchCall{page: page, limit: limit})
	block := p.block
	p.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return repository.Page{}, ctx.Err()
		}
	}
	if p.err != nil {
		return repository.Page{}, p.err
	}
	if limit <= 0 {
		limit = 12
	}
	start := (page - 1) * limit
	if start >= len(p.catalog) {
		return repository.Page{Records: []entity.Record{}, Total: int64(len(p.catalog))}, nil
	}
	end := min(start+limit, len(p.catalog))
	out := make([]entity.Record, end-start)
	copy(out, p.catalog[start:end])
	return repository.Page{Records: out, Total: int64(len(p.catalog))}, nil
}

func (p *fakeProvider) fetchCalls() []fetchCall {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]fetchCall(nil), p.calls...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
