package handler_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kmelby/showcase/internal/handler"
	"github.com/kmelby/showcase/internal/repository/sqlite"
	"github.com/kmelby/showcase/internal/service"
)

const testJWTSecret = "test-secret-key-that-is-long-enough-32"

// fakeThumbs generates thumbnails without calling any image API.
type fakeThumbs struct {
	url string
	err error
}

func (f *fakeThumbs) Generate(ctx context.Context, website string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type testServer struct {
	*httptest.Server
	db *sqlite.DB
}

// newTestServer stands up the full HTTP stack over a temp database, with the
// thumbnail generator replaced by a fake.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	auth := service.NewAuthService(db.Users(), db.Roles(), testJWTSecret, 4)
	assets := service.NewAssetService(db.Assets(), db.FileStore())
	projects := service.NewProjectService(db.Projects(), &fakeThumbs{url: "/assets/generated.png"}, assets)
	gallery := service.NewGalleryService(db.Projects())

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, auth, projects, gallery, assets, false)

	srv := httptest.NewServer(handler.SecurityHeaders(mux))
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, db: db}
}

// newClient returns an HTTP client with a cookie jar that follows redirects.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return &http.Client{Jar: jar}
}

// newNoRedirectClient returns a jar-backed client that stops at the first
// redirect so tests can inspect it.
func newNoRedirectClient(t *testing.T) *http.Client {
	t.Helper()
	client := newClient(t)
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return client
}

// register creates an account through the sign-up form, leaving the session
// cookie in the client's jar.
func register(t *testing.T, srv *testServer, client *http.Client, email string) {
	t.Helper()
	resp, err := client.PostForm(srv.URL+"/auth/register", url.Values{
		"email":            {email},
		"display_name":     {"Test User"},
		"password":         {"password123"},
		"confirm_password": {"password123"},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register: expected 200 after redirect, got %d", resp.StatusCode)
	}
}

// projectForm is the multipart payload for the add and edit flows.
type projectForm struct {
	title, description, website, github, hours string
	videoName, videoType                       string
	videoData                                  []byte
}

func postProjectForm(t *testing.T, client *http.Client, target string, form projectForm) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := map[string]string{
		"title":             form.title,
		"description":       form.description,
		"website":           form.website,
		"github":            form.github,
		"development_hours": form.hours,
	}
	for name, value := range fields {
		if value != "" {
			if err := mw.WriteField(name, value); err != nil {
				t.Fatalf("write field %s: %v", name, err)
			}
		}
	}
	if form.videoData != nil {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="video"; filename=%q`, form.videoName))
		header.Set("Content-Type", form.videoType)
		part, err := mw.CreatePart(header)
		if err != nil {
			t.Fatalf("create video part: %v", err)
		}
		if _, err := part.Write(form.videoData); err != nil {
			t.Fatalf("write video part: %v", err)
		}
	}
	mw.Close()

	resp, err := client.Post(target, mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("post project form: %v", err)
	}
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(data)
}

func addProject(t *testing.T, srv *testServer, client *http.Client, title string) {
	t.Helper()
	resp := postProjectForm(t, client, srv.URL+"/projects", projectForm{
		title:       title,
		description: "A test project",
		website:     "https://example.com",
	})
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add project: expected 200 after redirect, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, title) {
		t.Fatalf("add project: gallery does not show %q", title)
	}
}
