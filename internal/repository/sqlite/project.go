package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kmelby/showcase/internal/domain"
)

// projectRepo implements domain.ProjectRepository using SQLite.
type projectRepo struct {
	db *sql.DB
}

const projectColumns = `p.id, p.title, p.description, p.website, p.github, p.video_url,
	 p.thumbnail_url, p.development_hours, p.user_id, COALESCE(u.email, ''),
	 p.created_at, p.updated_at`

func (r *projectRepo) Create(ctx context.Context, project *domain.Project) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (title, description, website, github, video_url, thumbnail_url, development_hours, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		project.Title, project.Description, project.Website,
		nullableString(project.GitHub), nullableString(project.VideoURL),
		project.ThumbnailURL, nullableFloat(project.DevelopmentHours),
		nullableInt(project.UserID), now, now,
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	project.ID = id
	project.CreatedAt = now
	project.UpdatedAt = now
	return nil
}

func (r *projectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+`
		 FROM projects p LEFT JOIN users u ON u.id = p.user_id
		 WHERE p.id = ?`, id)

	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query project by id: %w", err)
	}
	return project, nil
}

func (r *projectRepo) List(ctx context.Context) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+projectColumns+`
		 FROM projects p LEFT JOIN users u ON u.id = p.user_id
		 ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *project)
	}
	return projects, rows.Err()
}

// Update writes the mutable fields only. ID, owner, thumbnail, and creation
// time are immutable across an edit.
func (r *projectRepo) Update(ctx context.Context, project *domain.Project) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE projects
		 SET title = ?, description = ?, website = ?, github = ?, video_url = ?, development_hours = ?, updated_at = ?
		 WHERE id = ?`,
		project.Title, project.Description, project.Website,
		nullableString(project.GitHub), nullableString(project.VideoURL),
		nullableFloat(project.DevelopmentHours), now, project.ID,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	project.UpdatedAt = now
	return nil
}

func (r *projectRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProject(s scanner) (*domain.Project, error) {
	var (
		p       domain.Project
		github  sql.NullString
		video   sql.NullString
		hours   sql.NullFloat64
		ownerID sql.NullInt64
	)
	err := s.Scan(&p.ID, &p.Title, &p.Description, &p.Website, &github, &video,
		&p.ThumbnailURL, &hours, &ownerID, &p.UserEmail, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if github.Valid {
		p.GitHub = &github.String
	}
	if video.Valid {
		p.VideoURL = &video.String
	}
	if hours.Valid {
		p.DevelopmentHours = &hours.Float64
	}
	if ownerID.Valid {
		p.UserID = &ownerID.Int64
	}
	return &p, nil
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullableFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func nullableInt(i *int64) any {
	if i == nil {
		return nil
	}
	return *i
}
