package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kmelby/showcase/internal/domain"
	"github.com/kmelby/showcase/internal/repository/sqlite"
)

func createTestProject(t *testing.T, db *sqlite.DB, title string, userID *int64) *domain.Project {
	t.Helper()
	project := &domain.Project{
		Title:        title,
		Description:  "A test project",
		Website:      "https://example.com",
		ThumbnailURL: "/assets/thumb.png",
		UserID:       userID,
	}
	if err := db.Projects().Create(context.Background(), project); err != nil {
		t.Fatalf("create project: %v", err)
	}
	return project
}

func TestProjectCreate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	github := "https://github.com/owner/proj"
	hours := 42.5
	project := &domain.Project{
		Title:            "My Project",
		Description:      "Something I built",
		Website:          "https://myproject.example.com",
		GitHub:           &github,
		ThumbnailURL:     "/assets/thumb.png",
		DevelopmentHours: &hours,
		UserID:           &owner.ID,
	}
	if err := db.Projects().Create(ctx, project); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if project.ID == 0 {
		t.Fatal("expected ID to be set after create")
	}

	got, err := db.Projects().GetByID(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "My Project" {
		t.Fatalf("expected title My Project, got %s", got.Title)
	}
	if got.GitHub == nil || *got.GitHub != github {
		t.Fatalf("expected github %s, got %v", github, got.GitHub)
	}
	if got.DevelopmentHours == nil || *got.DevelopmentHours != hours {
		t.Fatalf("expected development hours %v, got %v", hours, got.DevelopmentHours)
	}
	if got.UserEmail != "owner@example.com" {
		t.Fatalf("expected owner email to be joined, got %q", got.UserEmail)
	}
}

func TestProjectGetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Projects().GetByID(context.Background(), 9999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProjectList_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	first := createTestProject(t, db, "First", &owner.ID)
	second := createTestProject(t, db, "Second", &owner.ID)
	third := createTestProject(t, db, "Third", &owner.ID)

	projects, err := db.Projects().List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(projects) != 3 {
		t.Fatalf("expected 3 projects, got %d", len(projects))
	}
	wantOrder := []int64{third.ID, second.ID, first.ID}
	for i, want := range wantOrder {
		if projects[i].ID != want {
			t.Fatalf("position %d: expected project %d, got %d", i, want, projects[i].ID)
		}
	}
}

func TestProjectList_OwnerlessProject(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	createTestProject(t, db, "Orphan", nil)

	projects, err := db.Projects().List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}
	if projects[0].UserID != nil {
		t.Fatal("expected nil owner")
	}
	if projects[0].UserEmail != "" {
		t.Fatalf("expected empty owner email, got %q", projects[0].UserEmail)
	}
}

func TestProjectList_Empty(t *testing.T) {
	db := newTestDB(t)

	projects, err := db.Projects().List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(projects) != 0 {
		t.Fatalf("expected no projects, got %d", len(projects))
	}
}

func TestProjectUpdate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	project := createTestProject(t, db, "Before", &owner.ID)

	project.Title = "After"
	project.Description = "Updated description"
	hours := 10.0
	project.DevelopmentHours = &hours
	if err := db.Projects().Update(ctx, project); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := db.Projects().GetByID(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "After" {
		t.Fatalf("expected title After, got %s", got.Title)
	}
	if got.DevelopmentHours == nil || *got.DevelopmentHours != 10.0 {
		t.Fatalf("expected development hours 10, got %v", got.DevelopmentHours)
	}
	// Owner and thumbnail do not move on update.
	if got.UserID == nil || *got.UserID != owner.ID {
		t.Fatalf("expected owner %d to be unchanged, got %v", owner.ID, got.UserID)
	}
	if got.ThumbnailURL != "/assets/thumb.png" {
		t.Fatalf("expected thumbnail to be unchanged, got %s", got.ThumbnailURL)
	}
}

func TestProjectUpdate_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.Projects().Update(context.Background(), &domain.Project{
		ID:          9999,
		Title:       "Ghost",
		Description: "d",
		Website:     "https://example.com",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProjectDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	project := createTestProject(t, db, "Doomed", &owner.ID)

	if err := db.Projects().Delete(ctx, project.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := db.Projects().GetByID(ctx, project.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestProjectDelete_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.Projects().Delete(context.Background(), 9999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
