package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"taskboard/internal/models"
)

type projectSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ownedProject loads the project named by the URL parameter param and checks
// that the caller owns it. On failure the response has been written.
func (h *Handlers) ownedProject(w http.ResponseWriter, r *http.Request, param string) (*models.Project, bool) {
	project, err := h.store.GetProject(r.Context(), chi.URLParam(r, param))
	if err != nil {
		respondStoreError(w, err, "project not found")
		return nil, false
	}

	if !project.OwnedBy(UserFromContext(r.Context())) {
		respondError(w, http.StatusForbidden, "You don't have permission to modify this project.")
		return nil, false
	}

	return project, true
}

// ListProjects returns the caller's projects.
func (h *Handlers) ListProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	projects, err := h.store.ListProjectsByOwner(ctx, UserFromContext(ctx))
	if err != nil {
		respondServerError(w, err)
		return
	}

	summaries := make([]projectSummary, 0, len(projects))
	for _, p := range projects {
		summaries = append(summaries, projectSummary{ID: p.ID, Name: p.Name})
	}

	respondJSON(w, http.StatusOK, summaries)
}

// CreateProject creates a new project owned by the caller.
func (h *Handlers) CreateProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	project := models.NewProject(r.PostForm.Get("name"), UserFromContext(ctx))
	if err := project.Validate(); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.store.CreateProject(ctx, project); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, projectSummary{ID: project.ID, Name: project.Name})
}

// UpdateProject renames a project.
func (h *Handlers) UpdateProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	project, ok := h.ownedProject(w, r, "id")
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	name := strings.TrimSpace(r.PostForm.Get("name"))
	if name == project.Name {
		respondJSON(w, http.StatusOK, map[string]string{"message": "The project name is already current"})
		return
	}

	project.Name = name
	if err := project.Validate(); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.store.UpdateProject(ctx, project); err != nil {
		respondStoreError(w, err, "project not found")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// DeleteProject deletes a project and its tasks.
func (h *Handlers) DeleteProject(w http.ResponseWriter, r *http.Request) {
	project, ok := h.ownedProject(w, r, "id")
	if !ok {
		return
	}

	if err := h.store.DeleteProject(r.Context(), project.ID); err != nil {
		respondStoreError(w, err, "project not found")
		return
	}

	w.WriteHeader(http.StatusOK)
}
