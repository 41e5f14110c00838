package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/kmelby/showcase/internal/domain"
)

// GalleryService owns the in-memory project list served to the gallery view.
// Refresh replaces the whole list atomically with a fresh read from the
// store, so the view never observes a mix of pre- and post-mutation state.
// It must be called on page load and after every successful mutation.
type GalleryService struct {
	projects domain.ProjectRepository

	mu       sync.Mutex
	current  []domain.Project
	inflight *refreshCall
}

// refreshCall is one in-flight list read shared by all concurrent callers.
type refreshCall struct {
	done     chan struct{}
	projects []domain.Project
	err      error
}

// NewGalleryService creates a new GalleryService.
func NewGalleryService(projects domain.ProjectRepository) *GalleryService {
	return &GalleryService{projects: projects}
}

// Refresh re-reads the full project list (joined with owner emails, newest
// first) and replaces the in-memory list. Overlapping calls collapse into a
// single store read; every caller receives that read's result. On failure the
// previous list is retained so a transient read error never destroys a valid
// view.
func (s *GalleryService) Refresh(ctx context.Context) ([]domain.Project, error) {
	s.mu.Lock()
	if call := s.inflight; call != nil {
		s.mu.Unlock()
		select {
		case <-call.done:
			return call.projects, call.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	call := &refreshCall{done: make(chan struct{})}
	s.inflight = call
	s.mu.Unlock()

	// The read is shared across callers, so one caller going away must not
	// cancel it for the rest.
	projects, err := s.projects.List(context.WithoutCancel(ctx))
	if err != nil {
		err = fmt.Errorf("refresh projects: %w", err)
	}
	call.projects, call.err = projects, err

	s.mu.Lock()
	if err == nil {
		s.current = projects
	}
	s.inflight = nil
	s.mu.Unlock()

	close(call.done)
	return projects, err
}

// Snapshot returns a copy of the last successfully refreshed list.
func (s *GalleryService) Snapshot() []domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]domain.Project, len(s.current))
	copy(snapshot, s.current)
	return snapshot
}
