package models

import (
	"strings"
	"testing"
)

func TestProjectValidation_RequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		project Project
		wantErr bool
		errMsg  string
	}{
		{
			name:    "empty name should fail",
			project: Project{Name: "", Owner: "alice"},
			wantErr: true,
			errMsg:  "The project name cannot be empty",
		},
		{
			name:    "whitespace name should fail",
			project: Project{Name: "   ", Owner: "alice"},
			wantErr: true,
			errMsg:  "The project name cannot be empty",
		},
		{
			name:    "too long name should fail",
			project: Project{Name: strings.Repeat("a", 256), Owner: "alice"},
			wantErr: true,
			errMsg:  "The project name must be 255 characters or fewer",
		},
		{
			name:    "missing owner should fail",
			project: Project{Name: "Test Project"},
			wantErr: true,
			errMsg:  "owner is required",
		},
		{
			name:    "valid project should pass",
			project: Project{Name: "Test Project", Owner: "alice"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.project.Validate()
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				} else if err.Error() != tt.errMsg {
					t.Errorf("expected error %q, got %q", tt.errMsg, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestNewProject_TrimsNameAndAssignsID(t *testing.T) {
	p := NewProject("  Groceries  ", "alice")

	if p.Name != "Groceries" {
		t.Errorf("expected trimmed name, got %q", p.Name)
	}
	if p.ID == "" {
		t.Error("expected ID to be set")
	}
	if other := NewProject("Groceries", "alice"); other.ID == p.ID {
		t.Error("expected distinct IDs for distinct projects")
	}
}

func TestProject_OwnedBy(t *testing.T) {
	tests := []struct {
		name     string
		project  Project
		user     string
		expected bool
	}{
		{name: "owner matches", project: Project{Owner: "alice"}, user: "alice", expected: true},
		{name: "other user", project: Project{Owner: "alice"}, user: "bob", expected: false},
		{name: "empty owner never matches", project: Project{}, user: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.project.OwnedBy(tt.user); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}
