package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/kmelby/showcase/internal/domain"
	"github.com/kmelby/showcase/internal/repository/sqlite"
	"github.com/kmelby/showcase/internal/service"
)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// fakeThumbs is a ThumbnailGenerator that returns a fixed URL or a fixed
// error without touching any external API.
type fakeThumbs struct {
	url   string
	err   error
	calls int
}

func (f *fakeThumbs) Generate(ctx context.Context, website string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

// stubProjects is an in-memory ProjectRepository that records which methods
// were called.
type stubProjects struct {
	byID    map[int64]*domain.Project
	list    []domain.Project
	listErr error

	createCalls int
	deleteCalls int
	updateCalls int
	listCalls   int
}

func newStubProjects() *stubProjects {
	return &stubProjects{byID: make(map[int64]*domain.Project)}
}

func (s *stubProjects) Create(ctx context.Context, project *domain.Project) error {
	s.createCalls++
	project.ID = int64(len(s.byID) + 1)
	clone := *project
	s.byID[project.ID] = &clone
	return nil
}

func (s *stubProjects) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (s *stubProjects) List(ctx context.Context) ([]domain.Project, error) {
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.list, nil
}

func (s *stubProjects) Update(ctx context.Context, project *domain.Project) error {
	s.updateCalls++
	if _, ok := s.byID[project.ID]; !ok {
		return domain.ErrNotFound
	}
	clone := *project
	s.byID[project.ID] = &clone
	return nil
}

func (s *stubProjects) Delete(ctx context.Context, id int64) error {
	s.deleteCalls++
	if _, ok := s.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

var _ domain.ProjectRepository = (*stubProjects)(nil)

// failingRoles is a RoleRepository whose lookups always fail.
type failingRoles struct{}

func (failingRoles) HasRole(ctx context.Context, userID int64, role string) (bool, error) {
	return false, errors.New("role store unavailable")
}
func (failingRoles) Grant(ctx context.Context, userID int64, role string) error  { return nil }
func (failingRoles) Revoke(ctx context.Context, userID int64, role string) error { return nil }

func newTestAssets(t *testing.T) *service.AssetService {
	t.Helper()
	db := newTestDB(t)
	return service.NewAssetService(db.Assets(), db.FileStore())
}
