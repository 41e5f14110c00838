package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kmelby/showcase/internal/domain"
)

// ProjectInput is the submitted form data for the add and edit flows.
// Title, description, and website are required; the thumbnail is derived
// from the website, so a project can never be created without one.
type ProjectInput struct {
	Title            string   `validate:"required"`
	Description      string   `validate:"required"`
	Website          string   `validate:"required,url"`
	GitHub           string   `validate:"omitempty,url"`
	DevelopmentHours *float64 `validate:"omitempty,gte=0"`
}

// VideoUpload is an optional video attachment for a project.
type VideoUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ProjectService orchestrates the add, edit, and delete flows: validation,
// asset steps, then persistence. Authorization is enforced here as well as in
// the view; the view's gating is a convenience, this is the boundary.
type ProjectService struct {
	projects domain.ProjectRepository
	thumbs   ThumbnailGenerator
	assets   *AssetService
	validate *validator.Validate
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projects domain.ProjectRepository, thumbs ThumbnailGenerator, assets *AssetService) *ProjectService {
	return &ProjectService{
		projects: projects,
		thumbs:   thumbs,
		assets:   assets,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// GetByID returns a single project.
func (s *ProjectService) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

// Add validates the input, derives a thumbnail from the website, uploads the
// optional video, and only then inserts the record with the actor as owner.
// Any earlier step failing means nothing is persisted.
func (s *ProjectService) Add(ctx context.Context, actor *domain.Actor, input ProjectInput, video *VideoUpload) (*domain.Project, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	thumbnailURL, err := s.thumbs.Generate(ctx, input.Website)
	if err != nil {
		return nil, err
	}

	var videoURL *string
	if video != nil {
		url, err := s.assets.SaveVideo(ctx, video.Filename, video.ContentType, video.Data)
		if err != nil {
			return nil, err
		}
		videoURL = &url
	}

	ownerID := actor.UserID
	project := &domain.Project{
		Title:            input.Title,
		Description:      input.Description,
		Website:          input.Website,
		GitHub:           optional(input.GitHub),
		VideoURL:         videoURL,
		ThumbnailURL:     thumbnailURL,
		DevelopmentHours: input.DevelopmentHours,
		UserID:           &ownerID,
		UserEmail:        actor.Email,
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

// Edit updates the mutable fields of a project after an authorization check.
// The thumbnail is not regenerated; ID and owner are immutable. A new video
// upload replaces the stored URL, otherwise the existing one is kept.
func (s *ProjectService) Edit(ctx context.Context, actor *domain.Actor, id int64, input ProjectInput, video *VideoUpload) (*domain.Project, error) {
	existing, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanMutate(actor, existing) {
		return nil, domain.ErrForbidden
	}

	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	if video != nil {
		url, err := s.assets.SaveVideo(ctx, video.Filename, video.ContentType, video.Data)
		if err != nil {
			return nil, err
		}
		existing.VideoURL = &url
	}

	existing.Title = input.Title
	existing.Description = input.Description
	existing.Website = input.Website
	existing.GitHub = optional(input.GitHub)
	existing.DevelopmentHours = input.DevelopmentHours

	if err := s.projects.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return existing, nil
}

// Delete removes a project permanently. The caller must have obtained an
// explicit affirmative confirmation; without it the store is never touched.
func (s *ProjectService) Delete(ctx context.Context, actor *domain.Actor, id int64, confirmed bool) error {
	if !confirmed {
		return fmt.Errorf("%w: deletion requires confirmation", domain.ErrInvalidInput)
	}

	existing, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanMutate(actor, existing) {
		return domain.ErrForbidden
	}

	return s.projects.Delete(ctx, id)
}

func (s *ProjectService) validateInput(input ProjectInput) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate input: %w", err)
	}

	field := fieldLabel(verrs[0].Field())
	switch verrs[0].Tag() {
	case "required":
		return fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, field)
	case "url":
		return fmt.Errorf("%w: %s must be a valid URL", domain.ErrInvalidInput, field)
	case "gte":
		return fmt.Errorf("%w: %s cannot be negative", domain.ErrInvalidInput, field)
	default:
		return fmt.Errorf("%w: %s is invalid", domain.ErrInvalidInput, field)
	}
}

func fieldLabel(field string) string {
	switch field {
	case "GitHub":
		return "github URL"
	case "DevelopmentHours":
		return "development hours"
	default:
		return strings.ToLower(field)
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
