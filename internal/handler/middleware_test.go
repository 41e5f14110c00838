package handler_test

import (
	"net/http"
	"net/url"
	"testing"
)

func TestRequireAuth_NoCookie(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/projects")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	srv := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/projects", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: "garbage"})
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestRequirePage_RedirectPreservesNext(t *testing.T) {
	srv := newTestServer(t)
	client := newNoRedirectClient(t)

	resp, err := client.Get(srv.URL + "/projects/5/edit")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	loc := resp.Header.Get("Location")
	want := "/auth?next=" + url.QueryEscape("/projects/5/edit")
	if loc != want {
		t.Fatalf("expected redirect to %q, got %q", want, loc)
	}
}

func TestRequirePage_RootRedirectsWithoutNext(t *testing.T) {
	srv := newTestServer(t)
	client := newNoRedirectClient(t)

	resp, err := client.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if loc := resp.Header.Get("Location"); loc != "/auth" {
		t.Fatalf("expected plain /auth redirect, got %q", loc)
	}
}

func TestLogin_OpenRedirectBlocked(t *testing.T) {
	srv := newTestServer(t)
	register(t, srv, newClient(t), "alice@example.com")

	client := newNoRedirectClient(t)
	for _, next := range []string{"https://evil.example.com", "//evil.example.com"} {
		resp, err := client.PostForm(srv.URL+"/auth/login", url.Values{
			"email":    {"alice@example.com"},
			"password": {"password123"},
			"next":     {next},
		})
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusSeeOther {
			t.Fatalf("next=%q: expected 303, got %d", next, resp.StatusCode)
		}
		if loc := resp.Header.Get("Location"); loc != "/" {
			t.Fatalf("next=%q: expected redirect to /, got %q", next, loc)
		}
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()

	if got := resp.Header.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("expected nosniff, got %q", got)
	}
	if got := resp.Header.Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("expected DENY, got %q", got)
	}
}
