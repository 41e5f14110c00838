package handler

import (
	"context"
	"net/http"
	"net/url"

	"github.com/kmelby/showcase/internal/domain"
	"github.com/kmelby/showcase/internal/service"
)

type contextKey string

const (
	userContextKey  contextKey = "user"
	actorContextKey contextKey = "actor"
)

// UserFromContext extracts the authenticated user from the request context.
// Returns nil if no user is authenticated.
func UserFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userContextKey).(*domain.User)
	return user
}

// ActorFromContext extracts the acting identity (user + resolved admin flag)
// from the request context. Returns nil for unauthenticated requests.
func ActorFromContext(ctx context.Context) *domain.Actor {
	actor, _ := ctx.Value(actorContextKey).(*domain.Actor)
	return actor
}

// RequireAuth is middleware for API routes. It reads the auth_token cookie,
// validates the JWT, loads the user, resolves the admin role, and injects
// both into the request context. Returns 401 for unauthenticated requests.
func RequireAuth(auth *service.AuthService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, actor, err := authenticateRequest(r, auth)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), user, actor)))
	})
}

// RequirePage is middleware for browser routes. Unauthenticated requests are
// redirected to the auth page with the originally requested location
// preserved in the next parameter, so login can return the user there.
func RequirePage(auth *service.AuthService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, actor, err := authenticateRequest(r, auth)
		if err != nil {
			dest := "/auth"
			if target := r.URL.RequestURI(); target != "/" {
				dest += "?next=" + url.QueryEscape(target)
			}
			http.Redirect(w, r, dest, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), user, actor)))
	})
}

// OptionalAuth is middleware that attempts to authenticate but does not block
// unauthenticated requests.
func OptionalAuth(auth *service.AuthService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, actor, err := authenticateRequest(r, auth); err == nil {
			r = r.WithContext(withIdentity(r.Context(), user, actor))
		}
		next.ServeHTTP(w, r)
	})
}

// SecurityHeaders sets baseline security headers on every response.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

func withIdentity(ctx context.Context, user *domain.User, actor *domain.Actor) context.Context {
	ctx = context.WithValue(ctx, userContextKey, user)
	return context.WithValue(ctx, actorContextKey, actor)
}

func authenticateRequest(r *http.Request, auth *service.AuthService) (*domain.User, *domain.Actor, error) {
	cookie, err := r.Cookie("auth_token")
	if err != nil {
		return nil, nil, err
	}

	userID, err := auth.ValidateToken(cookie.Value)
	if err != nil {
		return nil, nil, err
	}

	user, err := auth.GetUserByID(r.Context(), userID)
	if err != nil {
		return nil, nil, err
	}

	return user, auth.Actor(r.Context(), user), nil
}

// safeNext returns next if it is a local path, otherwise the fallback "/".
// Prevents open redirects through the login flow.
func safeNext(next string) string {
	if next == "" || next[0] != '/' {
		return "/"
	}
	if len(next) > 1 && next[1] == '/' {
		return "/"
	}
	return next
}
