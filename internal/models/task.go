package models

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DeadlineLayout is the wire format accepted for task deadlines.
const DeadlineLayout = "2006-01-02 15:04"

var errInvalidDeadline = errors.New("Invalid deadline format. Expected format: YYYY-MM-DD HH:MM")

// Task represents a single task within a project.
// Priority is the display rank: lower values are listed first.
type Task struct {
	ID        string     `json:"id" yaml:"id"`
	ProjectID string     `json:"project_id" yaml:"project_id"`
	Name      string     `json:"name" yaml:"name"`
	Owner     string     `json:"owner" yaml:"owner"`
	Completed bool       `json:"is_completed" yaml:"is_completed"`
	Deadline  *time.Time `json:"deadline" yaml:"deadline,omitempty"`
	Priority  int        `json:"priority" yaml:"priority"`
	CreatedAt time.Time  `json:"created_at" yaml:"-"`
	UpdatedAt time.Time  `json:"updated_at" yaml:"-"`
}

// NewTask returns a task with a fresh ID and a trimmed name.
func NewTask(projectID, name, owner string) *Task {
	return &Task{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Name:      strings.TrimSpace(name),
		Owner:     owner,
	}
}

// Validate checks that the task has valid field values.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("Task name is required.")
	}

	if len(t.Name) > MaxNameLength {
		return errors.New("Task name must be 255 characters or fewer.")
	}

	if t.ProjectID == "" {
		return errors.New("project_id is required")
	}

	return nil
}

// ApplyPatch copies the allowed fields present in values onto the task.
// Unknown fields are ignored. It reports whether any allowed field was present.
func (t *Task) ApplyPatch(values url.Values) (bool, error) {
	updated := false

	if _, ok := values["name"]; ok {
		name := strings.TrimSpace(values.Get("name"))
		if name == "" {
			return false, errors.New("Task name is required.")
		}
		t.Name = name
		updated = true
	}

	if _, ok := values["is_completed"]; ok {
		switch strings.ToLower(values.Get("is_completed")) {
		case "true":
			t.Completed = true
		case "false":
			t.Completed = false
		default:
			return false, errors.New("is_completed must be 'true' or 'false'")
		}
		updated = true
	}

	if _, ok := values["deadline"]; ok {
		deadline, err := ParseDeadline(values.Get("deadline"))
		if err != nil {
			return false, err
		}
		t.Deadline = deadline
		updated = true
	}

	if _, ok := values["priority"]; ok {
		priority, err := parsePriority(values.Get("priority"))
		if err != nil {
			return false, err
		}
		t.Priority = priority
		updated = true
	}

	return updated, nil
}

// ParseDeadline parses a deadline in DeadlineLayout.
func ParseDeadline(s string) (*time.Time, error) {
	d, err := time.Parse(DeadlineLayout, strings.TrimSpace(s))
	if err != nil {
		return nil, errInvalidDeadline
	}
	return &d, nil
}

func parsePriority(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	p, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("priority must be an integer, got %q", s)
	}
	return p, nil
}

// SortByPriority orders tasks by ascending priority, keeping the existing
// order of tasks that share a priority.
func SortByPriority(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Priority < tasks[j].Priority
	})
}
