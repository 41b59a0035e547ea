package repository

import (
	"context"

	"catalog-selection/internal/domain/entity"
)

// Page is one provider response: the records of the requested page in catalog
// order and the total number of records across all pages.
type Page struct {
	Records []entity.Record
	Total   int64
}

// RecordProvider is a paginated, page-indexed source of catalog records.
type RecordProvider interface {
	// FetchPage returns the records of the 1-based page.
	// A limit of 0 selects the provider's default page size.
	// An out-of-range page is not an error; it returns zero records.
	FetchPage(ctx context.Context, page, limit int) (Page, error)
}

// RecordRepository is a database-backed RecordProvider that can also be
// populated, used when the catalog is served from local storage.
type RecordRepository interface {
	RecordProvider
	// Upsert inserts or replaces the given records keyed by ID.
	Upsert(ctx context.Context, records []entity.Record) error
	// Count returns the total number of records.
	Count(ctx context.Context) (int64, error)
}
