package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"catalog-selection/internal/infra/db"
	"catalog-selection/internal/repository"
)

// BlobRepo stores opaque blobs in the selection_blobs table.
type BlobRepo struct{ db db.Conn }

func NewBlobRepo(conn db.Conn) repository.BlobStore {
	return &BlobRepo{db: conn}
}

func (repo *BlobRepo) Load(ctx context.Context, key string) ([]byte, error) {
	const query = `
SELECT value
FROM selection_blobs
WHERE key = $1
LIMIT 1`
	var value []byte
	err := repo.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	return value, nil
}

func (repo *BlobRepo) Save(ctx context.Context, key string, blob []byte) error {
	const query = `
INSERT INTO selection_blobs (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE
SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	if _, err := repo.db.ExecContext(ctx, query, key, blob); err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	return nil
}
