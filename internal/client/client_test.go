package client

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"taskboard/internal/handlers"
	"taskboard/internal/models"
	"taskboard/internal/reorder"
	"taskboard/internal/store"
)

func TestUpdateTaskPriority_SendsPartialUpdate(t *testing.T) {
	var got *http.Request
	var form url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		got = r
		form = r.PostForm
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL+"/", "proj-1", WithUser("alice"), WithHTTPClient(srv.Client()))
	if err := c.UpdateTaskPriority(context.Background(), "task-9", 42); err != nil {
		t.Fatalf("UpdateTaskPriority failed: %v", err)
	}

	if got.Method != http.MethodPatch {
		t.Errorf("expected PATCH, got %s", got.Method)
	}
	if got.URL.Path != "/projects/proj-1/tasks/task-9/" {
		t.Errorf("unexpected path %q", got.URL.Path)
	}
	if len(form) != 1 || form.Get("priority") != "42" {
		t.Errorf("expected only priority=42, got %v", form)
	}
	if got.Header.Get("HX-Request") != "true" || got.Header.Get("HX-Reswap") != "none" {
		t.Errorf("expected htmx headers, got %v", got.Header)
	}
	if got.Header.Get(UserHeader) != "alice" {
		t.Errorf("expected user header alice, got %q", got.Header.Get(UserHeader))
	}
}

func TestUpdateTaskPriority_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "You don't have permission to modify this project.", http.StatusForbidden)
	}))
	defer srv.Close()

	c := New(srv.URL, "proj-1", WithHTTPClient(srv.Client()))
	err := c.UpdateTaskPriority(context.Background(), "task-1", 1)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403, got %d", statusErr.StatusCode)
	}
	if statusErr.Body != "You don't have permission to modify this project." {
		t.Errorf("unexpected body %q", statusErr.Body)
	}
}

func TestListTasks_SortsByPriority(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/projects/p/tasks/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id":"b","priority":2},{"id":"a","priority":1}]`)
	}))
	defer srv.Close()

	tasks, err := New(srv.URL, "p", WithHTTPClient(srv.Client())).ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 2 || tasks[0].ID != "a" || tasks[1].ID != "b" {
		t.Errorf("expected tasks sorted by priority, got %+v", tasks)
	}
}

// TestMoveTask_AgainstServer drives a reorder.List through the client against
// the real router and store.
func TestMoveTask_AgainstServer(t *testing.T) {
	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	ctx := context.Background()
	project := models.NewProject("Chores", "alice")
	s.CreateProject(ctx, project)
	for i, name := range []string{"Dishes", "Laundry", "Vacuum"} {
		task := models.NewTask(project.ID, name, "alice")
		task.Priority = (i + 1) * 10
		s.CreateTask(ctx, task)
	}

	srv := httptest.NewServer(handlers.New(s).Routes())
	defer srv.Close()

	c := New(srv.URL, project.ID, WithUser("alice"), WithHTTPClient(srv.Client()))
	tasks, err := c.ListTasks(ctx)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}

	d := reorder.NewDispatcher(c, reorder.WithLogger(log.New(io.Discard, "", 0)))
	defer d.Close(ctx)
	list := reorder.NewList(d, tasks)

	if err := list.MoveTask(2, reorder.Up).Wait(ctx); err != nil {
		t.Fatalf("move failed: %v", err)
	}

	local := list.Tasks()
	remote, err := s.ListTasksByProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("ListTasksByProject failed: %v", err)
	}

	expected := []string{"Dishes", "Vacuum", "Laundry"}
	for i, name := range expected {
		if local[i].Name != name {
			t.Errorf("local position %d: expected %q, got %q", i, name, local[i].Name)
		}
		if remote[i].Name != name {
			t.Errorf("stored position %d: expected %q, got %q", i, name, remote[i].Name)
		}
		if local[i].Priority != remote[i].Priority {
			t.Errorf("position %d: local priority %d, stored %d", i, local[i].Priority, remote[i].Priority)
		}
	}
}

func TestMoveTask_ForbiddenUpdateDiverges(t *testing.T) {
	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	ctx := context.Background()
	project := models.NewProject("Private", "alice")
	s.CreateProject(ctx, project)
	a := models.NewTask(project.ID, "A", "alice")
	a.Priority = 1
	b := models.NewTask(project.ID, "B", "alice")
	b.Priority = 2
	s.CreateTask(ctx, a)
	s.CreateTask(ctx, b)

	srv := httptest.NewServer(handlers.New(s).Routes())
	defer srv.Close()

	c := New(srv.URL, project.ID, WithUser("mallory"), WithHTTPClient(srv.Client()))
	d := reorder.NewDispatcher(c, reorder.WithLogger(log.New(io.Discard, "", 0)))
	defer d.Close(ctx)
	list := reorder.NewList(d, []models.Task{*a, *b})

	err = list.MoveTask(0, reorder.Down).Wait(ctx)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 StatusError, got %v", err)
	}

	// The optimistic local swap stands even though the server refused it.
	if got := list.Tasks(); got[0].ID != b.ID {
		t.Errorf("expected B first locally, got %+v", got)
	}
	stored, _ := s.ListTasksByProject(ctx, project.ID)
	if stored[0].ID != a.ID {
		t.Errorf("expected A still first on the server, got %+v", stored)
	}
}
