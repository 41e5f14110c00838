package domain

import (
	"context"
	"time"
)

// Project is a gallery entry submitted by a user. ThumbnailURL is generated
// from the website at creation time and never regenerated on edit. UserEmail
// is denormalized at read time by joining with the owner's profile.
type Project struct {
	ID               int64
	Title            string
	Description      string
	Website          string
	GitHub           *string
	VideoURL         *string
	ThumbnailURL     string
	DevelopmentHours *float64
	UserID           *int64
	UserEmail        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ProjectRepository defines persistence operations for projects.
// List returns all projects joined with the owner's email, ordered by
// creation time descending (newest first).
type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	GetByID(ctx context.Context, id int64) (*Project, error)
	List(ctx context.Context) ([]Project, error)
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id int64) error
}
