package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kmelby/showcase/internal/domain"
)

// assetRepo implements domain.AssetRepository using SQLite.
type assetRepo struct {
	db *sql.DB
}

func (r *assetRepo) Create(ctx context.Context, asset *domain.Asset) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO assets (filename, content_type, size, storage_key, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		asset.Filename, asset.ContentType, asset.Size, asset.StorageKey, now,
	)
	if err != nil {
		return fmt.Errorf("insert asset: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	asset.ID = id
	asset.CreatedAt = now
	return nil
}

func (r *assetRepo) GetByKey(ctx context.Context, key string) (*domain.Asset, error) {
	asset := &domain.Asset{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, filename, content_type, size, storage_key, created_at
		 FROM assets WHERE storage_key = ?`, key,
	).Scan(&asset.ID, &asset.Filename, &asset.ContentType, &asset.Size, &asset.StorageKey, &asset.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query asset by key: %w", err)
	}
	return asset, nil
}

func (r *assetRepo) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM assets WHERE storage_key = ?", key)
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	return nil
}
