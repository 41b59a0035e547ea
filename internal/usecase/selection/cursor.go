package selection

import (
	"sync"

	"catalog-selection/internal/domain/entity"
	"catalog-selection/internal/repository"
)

// Cursor tracks the requested page, the total record count last reported by
// the provider, and the records of the visible page.
//
// Each GoToPage returns a sequence number. A fetch result is applied only if
// its sequence number is still the latest, so a slow response for a page the
// user already navigated away from cannot overwrite the newer page.
type Cursor struct {
	mu       sync.RWMutex
	pageSize int
	page     int
	total    int64
	visible  []entity.Record
	seq      uint64
}

// CursorState is a consistent snapshot of a Cursor.
type CursorState struct {
	Page     int
	PageSize int
	Total    int64
	Records  []entity.Record
}

// NewCursor returns a cursor positioned on page 1 with nothing loaded.
func NewCursor(pageSize int) *Cursor {
	return &Cursor{pageSize: pageSize, page: 1}
}

// GoToPage sets the current page. There is no upper bound: an out-of-range
// page is valid and the provider decides what it contains.
func (c *Cursor) GoToPage(n int) (uint64, error) {
	if n < 1 {
		return 0, ErrInvalidPage
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = n
	c.seq++
	return c.seq, nil
}

// RecordFetchResult applies the total count and visible records of a fetch
// started by GoToPage. It reports false and changes nothing when seq has
// been superseded by a later navigation.
func (c *Cursor) RecordFetchResult(seq uint64, page repository.Page) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		return false
	}
	c.total = max(page.Total, 0)
	c.visible = cloneRecords(page.Records)
	return true
}

func (c *Cursor) Page() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.page
}

func (c *Cursor) PageSize() int {
	return c.pageSize
}

func (c *Cursor) Total() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.total
}

// Visible returns a copy of the records on the visible page.
func (c *Cursor) Visible() []entity.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneRecords(c.visible)
}

// VisibleIDs returns the ids of the visible page in display order.
func (c *Cursor) VisibleIDs() []int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return entity.IDs(c.visible)
}

// State returns page, total and records from one consistent read.
func (c *Cursor) State() CursorState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CursorState{
		Page:     c.page,
		PageSize: c.pageSize,
		Total:    c.total,
		Records:  cloneRecords(c.visible),
	}
}

func cloneRecords(records []entity.Record) []entity.Record {
	out := make([]entity.Record, len(records))
	copy(out, records)
	return out
}
