package domain

import (
	"context"
	"time"
)

// Asset holds metadata about an uploaded or generated file (video, thumbnail).
type Asset struct {
	ID          int64
	Filename    string
	ContentType string
	Size        int64
	StorageKey  string // Key used to retrieve bytes from FileStore
	CreatedAt   time.Time
}

// AssetRepository handles asset metadata persistence.
type AssetRepository interface {
	Create(ctx context.Context, asset *Asset) error
	GetByKey(ctx context.Context, key string) (*Asset, error)
	Delete(ctx context.Context, key string) error
}

// FileStore abstracts raw file byte storage.
// The initial implementation stores BLOBs in SQLite; this interface
// allows swapping to filesystem, S3, or another backend later.
type FileStore interface {
	Save(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
