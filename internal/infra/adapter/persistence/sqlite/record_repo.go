package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"catalog-selection/internal/common/pagination"
	"catalog-selection/internal/domain/entity"
	"catalog-selection/internal/infra/db"
	"catalog-selection/internal/observability/metrics"
	"catalog-selection/internal/repository"
)

// RecordRepo serves the catalog from the records table, ordered by id.
type RecordRepo struct {
	db       db.Conn
	strategy pagination.PaginationStrategy
	cfg      pagination.Config
}

func NewRecordRepo(conn db.Conn, cfg pagination.Config) repository.RecordRepository {
	return &RecordRepo{db: conn, strategy: pagination.OffsetStrategy{}, cfg: cfg}
}

func (repo *RecordRepo) FetchPage(ctx context.Context, page, limit int) (repository.Page, error) {
	start := time.Now()
	p, err := repo.fetchPage(ctx, page, limit)
	metrics.RecordProviderRequest("database", err == nil, time.Since(start))
	metrics.RecordDBQuery("fetch_page", time.Since(start))
	return p, err
}

func (repo *RecordRepo) fetchPage(ctx context.Context, page, limit int) (repository.Page, error) {
	if err := entity.ValidatePage(page); err != nil {
		return repository.Page{}, err
	}
	limit = repo.cfg.ClampLimit(limit)

	total, err := repo.Count(ctx)
	if err != nil {
		return repository.Page{}, fmt.Errorf("FetchPage: %w", err)
	}
	if pagination.PastEnd(page, limit, total) {
		return repository.Page{Records: []entity.Record{}, Total: total}, nil
	}

	q := repo.strategy.CalculateQuery(pagination.Params{Page: page, Limit: limit})
	const query = `
SELECT id, title, place_of_origin, artist_display, inscriptions, date_start, date_end
FROM records
ORDER BY id ASC
LIMIT ? OFFSET ?`
	rows, err := repo.db.QueryContext(ctx, query, q.Limit, q.Offset)
	if err != nil {
		return repository.Page{}, fmt.Errorf("FetchPage: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]entity.Record, 0, q.Limit)
	for rows.Next() {
		var r entity.Record
		if err := rows.Scan(&r.ID, &r.Title, &r.PlaceOfOrigin, &r.ArtistDisplay,
			&r.Inscriptions, &r.DateStart, &r.DateEnd); err != nil {
			return repository.Page{}, fmt.Errorf("FetchPage: Scan: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return repository.Page{}, fmt.Errorf("FetchPage: rows.Err: %w", err)
	}

	return repository.Page{Records: records, Total: total}, nil
}

func (repo *RecordRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM records`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

// Upsert writes all records in one statement so a batch lands atomically.
func (repo *RecordRepo) Upsert(ctx context.Context, records []entity.Record) error {
	if len(records) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString(`INSERT INTO records (id, title, place_of_origin, artist_display, inscriptions, date_start, date_end) VALUES `)
	args := make([]interface{}, 0, len(records)*7)
	for i, r := range records {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(?, ?, ?, ?, ?, ?, ?)")
		args = append(args, r.ID, r.Title, r.PlaceOfOrigin, r.ArtistDisplay, r.Inscriptions, r.DateStart, r.DateEnd)
	}
	b.WriteString(`
ON CONFLICT (id) DO UPDATE SET
    title = excluded.title,
    place_of_origin = excluded.place_of_origin,
    artist_display = excluded.artist_display,
    inscriptions = excluded.inscriptions,
    date_start = excluded.date_start,
    date_end = excluded.date_end`)

	if _, err := repo.db.ExecContext(ctx, b.String(), args...); err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}
	return nil
}
