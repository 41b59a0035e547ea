package repository

import (
	"context"
	"errors"
)

// ErrBlobNotFound is returned by BlobStore.Load when nothing is stored under the key.
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore is an opaque key-value store for serialized state.
type BlobStore interface {
	// Load returns the blob stored under key, or ErrBlobNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save stores blob under key, replacing any previous value.
	Save(ctx context.Context, key string, blob []byte) error
}
