package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kmelby/showcase/internal/domain"
	openai "github.com/sashabaranov/go-openai"
)

// maxThumbnailBytes caps how much of a generated image we are willing to pull
// down from the image API before giving up.
const maxThumbnailBytes = 20 * 1024 * 1024

// ThumbnailGenerator produces a publicly servable thumbnail URL for a
// project website. Implementations may be slow and may fail; callers must
// not persist anything until generation has succeeded.
type ThumbnailGenerator interface {
	Generate(ctx context.Context, website string) (string, error)
}

// DallEGenerator implements ThumbnailGenerator against the OpenAI images
// API. The generated image is downloaded and stored in the local file store
// so the returned URL stays valid after the upstream link expires.
type DallEGenerator struct {
	client *openai.Client
	assets *AssetService
	http   *http.Client
}

// NewDallEGenerator creates a generator authenticated with the given API key.
func NewDallEGenerator(apiKey string, assets *AssetService) *DallEGenerator {
	return NewDallEGeneratorWithConfig(openai.DefaultConfig(apiKey), assets)
}

// NewDallEGeneratorWithConfig creates a generator from an explicit client
// config. Tests use this to point at a stub server.
func NewDallEGeneratorWithConfig(config openai.ClientConfig, assets *AssetService) *DallEGenerator {
	return &DallEGenerator{
		client: openai.NewClientWithConfig(config),
		assets: assets,
		http:   &http.Client{Timeout: 60 * time.Second},
	}
}

// Generate asks DALL-E for a thumbnail themed on the website URL, downloads
// the result, and stores it as a local asset. All failures wrap
// domain.ErrGenerationFailed.
func (g *DallEGenerator) Generate(ctx context.Context, website string) (string, error) {
	prompt := fmt.Sprintf(
		"Create a minimalist, professional thumbnail for a website with the URL %s. "+
			"The image should be modern, clean, and suitable for a tech project showcase.",
		website,
	)

	resp, err := g.client.CreateImage(ctx, openai.ImageRequest{
		Model:          openai.CreateImageModelDallE3,
		Prompt:         prompt,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return "", fmt.Errorf("%w: image API: %v", domain.ErrGenerationFailed, err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("%w: image API returned no image", domain.ErrGenerationFailed)
	}

	data, err := g.download(ctx, resp.Data[0].URL)
	if err != nil {
		return "", fmt.Errorf("%w: download image: %v", domain.ErrGenerationFailed, err)
	}

	url, err := g.assets.SaveThumbnail(ctx, data)
	if err != nil {
		return "", fmt.Errorf("%w: store image: %v", domain.ErrGenerationFailed, err)
	}
	return url, nil
}

func (g *DallEGenerator) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxThumbnailBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxThumbnailBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", maxThumbnailBytes)
	}
	return data, nil
}
