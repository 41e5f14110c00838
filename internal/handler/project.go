package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/kmelby/showcase/internal/domain"
	"github.com/kmelby/showcase/internal/service"
	"github.com/kmelby/showcase/internal/view"
	"github.com/starfederation/datastar-go/datastar"
)

const maxUploadMemory = 32 << 20 // 32MB in memory, larger parts spill to disk

// ProjectHandler handles the gallery page and the project mutation flows.
type ProjectHandler struct {
	projects *service.ProjectService
	gallery  *service.GalleryService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projects *service.ProjectService, gallery *service.GalleryService) *ProjectHandler {
	return &ProjectHandler{projects: projects, gallery: gallery}
}

// HandleGallery renders the gallery page from a fresh list read. If the
// refresh fails the last known list is shown instead of an empty page.
// GET /
func (h *ProjectHandler) HandleGallery(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	notice := ""
	projects, err := h.gallery.Refresh(r.Context())
	if err != nil {
		slog.Error("refresh gallery", "error", err)
		projects = h.gallery.Snapshot()
		notice = "Could not refresh the project list. Showing the last known state."
	}

	view.GalleryPage(actor, projects, notice).Render(r.Context(), w)
}

// HandleRefresh re-reads the project list and patches the grid over SSE.
// GET /gallery/refresh
func (h *ProjectHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	sse := datastar.NewSSE(w, r)

	projects, err := h.gallery.Refresh(r.Context())
	if err != nil {
		slog.Error("refresh gallery", "error", err)
		sse.PatchElementTempl(view.Notice("error", "Could not refresh the project list."))
		return
	}

	sse.PatchElementTempl(view.ProjectGrid(actor, projects))
	sse.PatchElementTempl(view.Notice("", ""))
}

// HandleAdd processes the add-project form: validate, generate thumbnail,
// store the optional video, insert, then refresh the gallery list.
// POST /projects
func (h *ProjectHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	input, video, err := parseProjectForm(r)
	if err != nil {
		h.renderGalleryWithError(w, r, flowErrorMessage("add project", err))
		return
	}

	if _, err := h.projects.Add(r.Context(), actor, input, video); err != nil {
		h.renderGalleryWithError(w, r, flowErrorMessage("add project", err))
		return
	}

	h.refreshAfterMutation(r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleEditForm renders the edit form. The control is only reachable for
// actors that may mutate the project; everyone else sees a 404.
// GET /projects/{id}/edit
func (h *ProjectHandler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	project, ok := h.loadProject(w, r)
	if !ok {
		return
	}
	if !domain.CanMutate(actor, project) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	view.EditPage(project, "").Render(r.Context(), w)
}

// HandleEdit processes the edit form and refreshes the gallery list.
// POST /projects/{id}
func (h *ProjectHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	project, ok := h.loadProject(w, r)
	if !ok {
		return
	}

	input, video, err := parseProjectForm(r)
	if err != nil {
		view.EditPage(project, flowErrorMessage("edit project", err)).Render(r.Context(), w)
		return
	}

	if _, err := h.projects.Edit(r.Context(), actor, project.ID, input, video); err != nil {
		view.EditPage(project, flowErrorMessage("edit project", err)).Render(r.Context(), w)
		return
	}

	h.refreshAfterMutation(r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleDelete processes a delete request. The form carries the user's
// explicit confirmation; without it the store is never called.
// POST /projects/{id}/delete
func (h *ProjectHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	confirmed := r.FormValue("confirm") == "true"
	if err := h.projects.Delete(r.Context(), actor, id, confirmed); err != nil {
		h.renderGalleryWithError(w, r, flowErrorMessage("delete project", err))
		return
	}

	h.refreshAfterMutation(r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleListAPI returns the refreshed project list as JSON.
// GET /api/projects
func (h *ProjectHandler) HandleListAPI(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	projects, err := h.gallery.Refresh(r.Context())
	if err != nil {
		slog.Error("refresh gallery", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not fetch projects.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"projects": toProjectDTOs(projects, actor),
	})
}

// refreshAfterMutation re-reads the list once the persistence call has
// completed. A failed refresh keeps the previous list; the redirect that
// follows will try again on page load.
func (h *ProjectHandler) refreshAfterMutation(r *http.Request) {
	if _, err := h.gallery.Refresh(r.Context()); err != nil {
		slog.Error("refresh after mutation", "error", err)
	}
}

func (h *ProjectHandler) loadProject(w http.ResponseWriter, r *http.Request) (*domain.Project, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return nil, false
	}

	project, err := h.projects.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return nil, false
		}
		slog.Error("get project", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	return project, true
}

func (h *ProjectHandler) renderGalleryWithError(w http.ResponseWriter, r *http.Request, notice string) {
	actor := ActorFromContext(r.Context())
	view.GalleryPage(actor, h.gallery.Snapshot(), notice).Render(r.Context(), w)
}

// parseProjectForm extracts the project input and optional video upload from
// a multipart form post.
func parseProjectForm(r *http.Request) (service.ProjectInput, *service.VideoUpload, error) {
	var input service.ProjectInput

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return input, nil, fmt.Errorf("%w: could not read the submitted form", domain.ErrInvalidInput)
	}

	input.Title = r.FormValue("title")
	input.Description = r.FormValue("description")
	input.Website = r.FormValue("website")
	input.GitHub = r.FormValue("github")

	if v := r.FormValue("development_hours"); v != "" {
		hours, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return input, nil, fmt.Errorf("%w: development hours must be a number", domain.ErrInvalidInput)
		}
		input.DevelopmentHours = &hours
	}

	file, header, err := r.FormFile("video")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return input, nil, nil
		}
		return input, nil, fmt.Errorf("%w: could not read the video upload", domain.ErrInvalidInput)
	}
	defer file.Close()

	if header.Filename == "" || header.Size == 0 {
		return input, nil, nil
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return input, nil, fmt.Errorf("%w: could not read the video upload", domain.ErrInvalidInput)
	}

	video := &service.VideoUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}
	return input, video, nil
}

// flowErrorMessage maps a mutation flow error to a user-visible notice.
// Input, generation, and upload errors carry messages written for users and
// are surfaced verbatim; everything else is logged and replaced with a
// generic message.
func flowErrorMessage(op string, err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrGenerationFailed),
		errors.Is(err, domain.ErrUploadFailed):
		return err.Error()
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrUnauthorized):
		return "You do not have permission to modify this project."
	case errors.Is(err, domain.ErrNotFound):
		return "Project not found. It may have been deleted."
	default:
		slog.Error(op, "error", err)
		return "An unexpected error occurred. Please try again."
	}
}
