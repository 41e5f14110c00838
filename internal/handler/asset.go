package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/kmelby/showcase/internal/domain"
	"github.com/kmelby/showcase/internal/service"
)

// AssetHandler serves stored thumbnails and videos.
type AssetHandler struct {
	assets *service.AssetService
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assets *service.AssetService) *AssetHandler {
	return &AssetHandler{assets: assets}
}

// HandleGet serves the raw bytes of a stored asset.
// GET /assets/{key}
func (h *AssetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	data, contentType, err := h.assets.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		slog.Error("get asset", "key", key, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	// Keys are content-addressed by UUID; the bytes never change.
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.Write(data)
}
