// Package client talks to the taskboard HTTP API the way the browser does:
// form-encoded htmx requests scoped to a single project.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"taskboard/internal/models"
)

// UserHeader carries the caller's identity on every request.
const UserHeader = "X-User"

// DefaultTimeout is the HTTP client timeout used when none is given.
const DefaultTimeout = 5 * time.Second

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Client issues requests for one project on behalf of one user.
type Client struct {
	baseURL    string
	projectID  string
	user       string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client (for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUser sets the identity sent in UserHeader.
func WithUser(user string) Option {
	return func(c *Client) { c.user = user }
}

// New creates a client for the project projectID on the server at baseURL.
func New(baseURL, projectID string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		projectID:  projectID,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProjectID returns the project this client is scoped to.
func (c *Client) ProjectID() string {
	return c.projectID
}

func (c *Client) tasksURL() string {
	return fmt.Sprintf("%s/projects/%s/tasks/", c.baseURL, url.PathEscape(c.projectID))
}

func (c *Client) taskURL(taskID string) string {
	return c.tasksURL() + url.PathEscape(taskID) + "/"
}

// UpdateTaskPriority sends a partial update carrying only the new priority.
// The request asks htmx-aware servers not to swap any content.
func (c *Client) UpdateTaskPriority(ctx context.Context, taskID string, priority int) error {
	form := url.Values{"priority": {strconv.Itoa(priority)}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.taskURL(taskID), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	req.Header.Set("HX-Reswap", "none")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return nil
}

// ListTasks fetches the project's tasks in priority order.
func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.tasksURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var tasks []models.Task
	if err := json.NewDecoder(resp.Body).Decode(&tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}

	models.SortByPriority(tasks)
	return tasks, nil
}

// ListProjects fetches the projects owned by the client's user.
func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/projects/", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var projects []models.Project
	if err := json.NewDecoder(resp.Body).Decode(&projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}
	return projects, nil
}

// do sends req and turns non-2xx responses into a *StatusError.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if c.user != "" {
		req.Header.Set(UserHeader, c.user)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{
			Method:     req.Method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	return resp, nil
}
