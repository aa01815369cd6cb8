package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"taskboard/internal/models"
)

// ListTasks returns every task of a project in priority order.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	project, ok := h.ownedProject(w, r, "projectID")
	if !ok {
		return
	}

	tasks, err := h.store.ListTasksByProject(r.Context(), project.ID)
	if err != nil {
		respondServerError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tasks)
}

// CreateTask creates a task at the bottom of the project's list.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	name := strings.TrimSpace(r.PostForm.Get("name"))
	if name == "" {
		respondError(w, http.StatusBadRequest, "Task name is required.")
		return
	}

	project, ok := h.ownedProject(w, r, "projectID")
	if !ok {
		return
	}

	task := models.NewTask(project.ID, name, UserFromContext(ctx))
	if v := r.PostForm.Get("deadline"); v != "" {
		deadline, err := models.ParseDeadline(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		task.Deadline = deadline
	}

	if err := task.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	priority, err := h.store.NextTaskPriority(ctx, project.ID)
	if err != nil {
		respondServerError(w, err)
		return
	}
	task.Priority = priority

	if err := h.store.CreateTask(ctx, task); err != nil {
		respondServerError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, task)
}

// UpdateTask applies a partial update. Only name, is_completed, deadline and
// priority are honoured; the response has no body.
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	project, ok := h.ownedProject(w, r, "projectID")
	if !ok {
		return
	}

	task, err := h.store.GetTask(ctx, project.ID, chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err, "task not found")
		return
	}

	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	updated, err := task.ApplyPatch(r.PostForm)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if updated {
		if err := h.store.UpdateTask(ctx, task); err != nil {
			respondStoreError(w, err, "task not found")
			return
		}
	}

	w.WriteHeader(http.StatusOK)
}

// DeleteTask deletes a task.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	project, ok := h.ownedProject(w, r, "projectID")
	if !ok {
		return
	}

	if err := h.store.DeleteTask(r.Context(), project.ID, chi.URLParam(r, "id")); err != nil {
		respondStoreError(w, err, "task not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
