package handlers

import (
	"net/http"

	"taskboard/internal/models"
)

// Home returns the caller's projects, each with its tasks in priority
// order. It is the payload a client view uses to populate its task lists.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	projects, err := h.store.ListProjectsByOwner(ctx, UserFromContext(ctx))
	if err != nil {
		respondServerError(w, err)
		return
	}

	for i := range projects {
		tasks, err := h.store.ListTasksByProject(ctx, projects[i].ID)
		if err != nil {
			respondServerError(w, err)
			return
		}
		projects[i].Tasks = tasks
	}

	if projects == nil {
		projects = []models.Project{}
	}

	respondJSON(w, http.StatusOK, projects)
}
