package handler

import (
	"time"

	"github.com/kmelby/showcase/internal/domain"
)

// UserDTO is the JSON representation of a user.
type UserDTO struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IsAdmin     bool   `json:"isAdmin"`
	CreatedAt   string `json:"createdAt"`
}

func toUserDTO(u *domain.User, isAdmin bool) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		IsAdmin:     isAdmin,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}

// ProjectDTO is the JSON representation of a project. Storage uses
// snake_case columns; the API exposes camelCase fields.
type ProjectDTO struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Website          string   `json:"website"`
	GitHub           *string  `json:"github,omitempty"`
	VideoURL         *string  `json:"videoUrl,omitempty"`
	ThumbnailURL     string   `json:"thumbnailUrl"`
	DevelopmentHours *float64 `json:"developmentHours,omitempty"`
	UserID           *int64   `json:"userId,omitempty"`
	UserEmail        string   `json:"userEmail,omitempty"`
	CanMutate        bool     `json:"canMutate"`
	CreatedAt        string   `json:"createdAt"`
	UpdatedAt        string   `json:"updatedAt"`
}

func toProjectDTO(p *domain.Project, actor *domain.Actor) ProjectDTO {
	return ProjectDTO{
		ID:               p.ID,
		Title:            p.Title,
		Description:      p.Description,
		Website:          p.Website,
		GitHub:           p.GitHub,
		VideoURL:         p.VideoURL,
		ThumbnailURL:     p.ThumbnailURL,
		DevelopmentHours: p.DevelopmentHours,
		UserID:           p.UserID,
		UserEmail:        p.UserEmail,
		CanMutate:        domain.CanMutate(actor, p),
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        p.UpdatedAt.Format(time.RFC3339),
	}
}

func toProjectDTOs(projects []domain.Project, actor *domain.Actor) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i := range projects {
		dtos[i] = toProjectDTO(&projects[i], actor)
	}
	return dtos
}
