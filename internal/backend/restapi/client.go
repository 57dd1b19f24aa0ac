// Package restapi implements the service.Service interface over the
// JSON task collection served at {baseURL}/tasks.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tasksync/internal/service"
)

const (
	// CollectionPath is the path of the task collection endpoint.
	CollectionPath = "/tasks"

	// DefaultTimeout bounds a single API call when no timeout is configured.
	DefaultTimeout = 15 * time.Second

	// maxErrorBody caps how much of an error response is drained.
	maxErrorBody = 4 << 10
)

// Client implements service.Service against a REST task backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds every API call. Zero disables the per-call bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New creates a client for the task collection under baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("base URL required")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid base URL: missing host")
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListTasks returns the full task collection.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.do(ctx, http.MethodGet, CollectionPath, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var tasks []service.Task
	if err := json.NewDecoder(resp.Body).Decode(&tasks); err != nil {
		return nil, fmt.Errorf("failed to decode task list: %w", err)
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	return tasks, nil
}

// CreateTask submits a new task with the given title.
func (c *Client) CreateTask(ctx context.Context, title string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	body := struct {
		Title string `json:"title"`
	}{Title: title}
	return c.send(ctx, http.MethodPost, CollectionPath, body)
}

// UpdateTask sets the completed flag of a task.
func (c *Client) UpdateTask(ctx context.Context, id service.TaskID, completed bool) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	body := struct {
		Completed bool `json:"completed"`
	}{Completed: completed}
	return c.send(ctx, http.MethodPut, itemPath(id), body)
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id service.TaskID) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	return c.send(ctx, http.MethodDelete, itemPath(id), nil)
}

func itemPath(id service.TaskID) string {
	return CollectionPath + "/" + url.PathEscape(id.String())
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// send performs a request whose response body is unused.
func (c *Client) send(ctx context.Context, method, path string, body any) error {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	resp.Body.Close()
	return nil
}

// do issues the request and turns non-2xx responses into *service.StatusError.
// On success the caller owns resp.Body.
func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, wrapError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		return nil, &service.StatusError{Method: method, Path: path, Code: resp.StatusCode}
	}
	return resp, nil
}

// wrapError turns transport errors into short messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", err)
	}
	return fmt.Errorf("failed to fetch: %w", err)
}
