package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxNameLength is the longest name accepted for projects and tasks.
const MaxNameLength = 255

// Project groups the tasks owned by a single user.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Owner     string    `json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	// Tasks holds the tasks for this project (populated by queries)
	Tasks []Task `json:"tasks,omitempty"`
}

// NewProject returns a project with a fresh ID and a trimmed name.
func NewProject(name, owner string) *Project {
	return &Project{
		ID:    uuid.NewString(),
		Name:  strings.TrimSpace(name),
		Owner: owner,
	}
}

// Validate checks that the project has valid field values.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("The project name cannot be empty")
	}

	if len(p.Name) > MaxNameLength {
		return errors.New("The project name must be 255 characters or fewer")
	}

	if p.Owner == "" {
		return errors.New("owner is required")
	}

	return nil
}

// OwnedBy reports whether user owns the project.
func (p *Project) OwnedBy(user string) bool {
	return p.Owner != "" && p.Owner == user
}
