package handler

import (
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/kmelby/showcase/internal/domain"
	"github.com/kmelby/showcase/internal/service"
	"github.com/kmelby/showcase/internal/view"
)

// AuthHandler handles the sign-in page and the form-based auth flows.
type AuthHandler struct {
	auth         *service.AuthService
	limiter      *service.TokenBucket
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, limiter *service.TokenBucket, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, limiter: limiter, cookieSecure: cookieSecure}
}

// HandleAuthPage renders the sign-in / sign-up page.
// Already-authenticated visitors are sent back to where they came from.
// GET /auth
func (h *AuthHandler) HandleAuthPage(w http.ResponseWriter, r *http.Request) {
	if UserFromContext(r.Context()) != nil {
		http.Redirect(w, r, safeNext(r.URL.Query().Get("next")), http.StatusSeeOther)
		return
	}
	next := r.URL.Query().Get("next")
	view.AuthPage(next, "").Render(r.Context(), w)
}

// HandleLogin processes the login form, sets the session cookie, and returns
// the user to the page they originally requested.
// POST /auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	next := r.FormValue("next")

	if !h.limiter.Allow(clientIP(r)) {
		view.AuthPage(next, "Too many login attempts. Please wait a moment and try again.").Render(r.Context(), w)
		return
	}

	token, err := h.auth.Login(r.Context(), r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			view.AuthPage(next, "Invalid email or password.").Render(r.Context(), w)
			return
		}
		slog.Error("login user", "error", err)
		view.AuthPage(next, "An unexpected error occurred. Please try again.").Render(r.Context(), w)
		return
	}

	h.setAuthCookie(w, token)
	http.Redirect(w, r, safeNext(next), http.StatusSeeOther)
}

// HandleRegister processes the sign-up form and signs the new user in.
// POST /auth/register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	next := r.FormValue("next")
	email := r.FormValue("email")
	password := r.FormValue("password")

	_, err := h.auth.Register(r.Context(), email, r.FormValue("display_name"), password, r.FormValue("confirm_password"))
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			view.AuthPage(next, "An account with that email already exists.").Render(r.Context(), w)
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			view.AuthPage(next, err.Error()).Render(r.Context(), w)
			return
		}
		slog.Error("register user", "error", err)
		view.AuthPage(next, "An unexpected error occurred. Please try again.").Render(r.Context(), w)
		return
	}

	token, err := h.auth.Login(r.Context(), email, password)
	if err != nil {
		slog.Error("login after register", "error", err)
		http.Redirect(w, r, "/auth", http.StatusSeeOther)
		return
	}

	h.setAuthCookie(w, token)
	http.Redirect(w, r, safeNext(next), http.StatusSeeOther)
}

// HandleLogout clears the session cookie and returns to the auth page.
// POST /auth/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	http.Redirect(w, r, "/auth", http.StatusSeeOther)
}

// HandleMe returns the currently authenticated user.
// GET /api/auth/me
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	actor := ActorFromContext(r.Context())
	if user == nil || actor == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(user, actor.IsAdmin),
	})
}

func (h *AuthHandler) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400, // 24 hours
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
