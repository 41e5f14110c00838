package handler

import (
	"net/http"

	"github.com/kmelby/showcase/internal/service"
)

// Login attempts per client: one every 2 seconds sustained, bursts of 5.
const (
	loginRate  = 0.5
	loginBurst = 5
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	auth *service.AuthService,
	projects *service.ProjectService,
	gallery *service.GalleryService,
	assets *service.AssetService,
	cookieSecure bool,
) {
	authHandler := NewAuthHandler(auth, service.NewTokenBucket(loginRate, loginBurst), cookieSecure)
	projectHandler := NewProjectHandler(projects, gallery)
	assetHandler := NewAssetHandler(assets)

	mux.HandleFunc("GET /healthz", HandleHealthz)

	// Auth pages and flows.
	mux.Handle("GET /auth", OptionalAuth(auth, http.HandlerFunc(authHandler.HandleAuthPage)))
	mux.HandleFunc("POST /auth/login", authHandler.HandleLogin)
	mux.HandleFunc("POST /auth/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /auth/logout", authHandler.HandleLogout)

	// Gallery and mutation flows (browser routes, redirect when signed out).
	mux.Handle("GET /{$}", RequirePage(auth, http.HandlerFunc(projectHandler.HandleGallery)))
	mux.Handle("POST /projects", RequirePage(auth, http.HandlerFunc(projectHandler.HandleAdd)))
	mux.Handle("GET /projects/{id}/edit", RequirePage(auth, http.HandlerFunc(projectHandler.HandleEditForm)))
	mux.Handle("POST /projects/{id}", RequirePage(auth, http.HandlerFunc(projectHandler.HandleEdit)))
	mux.Handle("POST /projects/{id}/delete", RequirePage(auth, http.HandlerFunc(projectHandler.HandleDelete)))
	mux.Handle("GET /gallery/refresh", RequireAuth(auth, http.HandlerFunc(projectHandler.HandleRefresh)))

	// JSON API.
	mux.Handle("GET /api/projects", RequireAuth(auth, http.HandlerFunc(projectHandler.HandleListAPI)))
	mux.Handle("GET /api/auth/me", RequireAuth(auth, http.HandlerFunc(authHandler.HandleMe)))

	// Stored assets (thumbnails, videos).
	mux.HandleFunc("GET /assets/{key}", assetHandler.HandleGet)
}
