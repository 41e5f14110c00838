package service

import (
	"context"
	"fmt"
	"path"

	"github.com/google/uuid"
	"github.com/kmelby/showcase/internal/domain"
)

const maxVideoSize = 100 * 1024 * 1024 // 100MB

// allowedVideoTypes are the content types accepted for video uploads.
var allowedVideoTypes = map[string]bool{
	"video/mp4":       true,
	"video/webm":      true,
	"video/quicktime": true,
}

// AssetService stores uploaded and generated files and hands out the public
// URLs they are served under.
type AssetService struct {
	assets domain.AssetRepository
	files  domain.FileStore
}

// NewAssetService creates a new AssetService.
func NewAssetService(assets domain.AssetRepository, files domain.FileStore) *AssetService {
	return &AssetService{assets: assets, files: files}
}

// SaveVideo validates and stores an uploaded video, returning its public URL.
func (s *AssetService) SaveVideo(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if !allowedVideoTypes[contentType] {
		return "", fmt.Errorf("%w: only MP4, WebM, and QuickTime videos are accepted", domain.ErrInvalidInput)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty video file", domain.ErrInvalidInput)
	}
	if len(data) > maxVideoSize {
		return "", fmt.Errorf("%w: video exceeds 100MB limit", domain.ErrInvalidInput)
	}

	key := uuid.NewString() + path.Ext(filename)
	return s.store(ctx, key, filename, contentType, data)
}

// SaveThumbnail stores generated thumbnail bytes, returning their public URL.
func (s *AssetService) SaveThumbnail(ctx context.Context, data []byte) (string, error) {
	key := uuid.NewString() + ".png"
	return s.store(ctx, key, key, "image/png", data)
}

// Get returns the stored bytes and content type for a storage key.
func (s *AssetService) Get(ctx context.Context, key string) ([]byte, string, error) {
	asset, err := s.assets.GetByKey(ctx, key)
	if err != nil {
		return nil, "", err
	}

	data, err := s.files.Get(ctx, asset.StorageKey)
	if err != nil {
		return nil, "", fmt.Errorf("get file: %w", err)
	}
	return data, asset.ContentType, nil
}

func (s *AssetService) store(ctx context.Context, key, filename, contentType string, data []byte) (string, error) {
	if err := s.files.Save(ctx, key, data); err != nil {
		return "", fmt.Errorf("%w: save file: %v", domain.ErrUploadFailed, err)
	}

	asset := &domain.Asset{
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		StorageKey:  key,
	}
	if err := s.assets.Create(ctx, asset); err != nil {
		// Best-effort cleanup of the stored bytes.
		s.files.Delete(ctx, key)
		return "", fmt.Errorf("%w: record asset: %v", domain.ErrUploadFailed, err)
	}

	return "/assets/" + key, nil
}
