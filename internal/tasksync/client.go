package tasksync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"tasksync/internal/service"
)

// ErrTaskIDRequired is returned by Toggle and Delete for a zero TaskID.
var ErrTaskIDRequired = errors.New("task id required")

// Client synchronizes a View with a remote task collection.
type Client struct {
	svc    service.Service
	view   View
	policy ErrorPolicy
	logger *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithPolicy sets the error policy. The default is PolicyLog.
func WithPolicy(p ErrorPolicy) Option {
	return func(c *Client) { c.policy = p }
}

// WithLogger sets the logger warnings are written to. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client rendering svc's collection into view.
func New(svc service.Service, view View, opts ...Option) *Client {
	c := &Client{
		svc:    svc,
		view:   view,
		policy: PolicyLog,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Policy returns the configured error policy.
func (c *Client) Policy() ErrorPolicy {
	return c.policy
}

// Load fetches the collection and replaces the view with it.
//
// A non-2xx answer is returned and nothing is rendered. A transport failure
// leaves the view as it was; under PolicyLog it is logged and swallowed.
func (c *Client) Load(ctx context.Context) (Outcome, error) {
	out := Outcome{Op: OpLoad}

	tasks, err := c.svc.ListTasks(ctx)
	if err != nil {
		err = fmt.Errorf("error loading tasks: %w", err)
		if service.IsStatus(err) || c.policy == PolicySurface {
			return out, err
		}
		c.warn(err)
		out.Warning = err
		return out, nil
	}

	entries := Project(tasks)
	c.view.Render(entries)
	out.Rendered = true
	out.Tasks = len(entries)
	return out, nil
}

// Create submits a task and reloads. A title that is blank after trimming is
// not sent and nothing is reloaded.
func (c *Client) Create(ctx context.Context, title string) (Outcome, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Outcome{Op: OpCreate, Skipped: true}, nil
	}
	return c.mutate(ctx, OpCreate, func(ctx context.Context) error {
		return c.svc.CreateTask(ctx, title)
	})
}

// Toggle sets a task's completed flag and reloads.
func (c *Client) Toggle(ctx context.Context, id service.TaskID, completed bool) (Outcome, error) {
	if id.IsZero() {
		return Outcome{Op: OpToggle}, ErrTaskIDRequired
	}
	return c.mutate(ctx, OpToggle, func(ctx context.Context) error {
		return c.svc.UpdateTask(ctx, id, completed)
	})
}

// Delete removes a task and reloads, whether or not the delete succeeded.
func (c *Client) Delete(ctx context.Context, id service.TaskID) (Outcome, error) {
	if id.IsZero() {
		return Outcome{Op: OpDelete}, ErrTaskIDRequired
	}
	return c.mutate(ctx, OpDelete, func(ctx context.Context) error {
		return c.svc.DeleteTask(ctx, id)
	})
}

// mutate runs call and then always reloads. The reload is the only signal of
// whether the mutation took effect.
func (c *Client) mutate(ctx context.Context, op Op, call func(context.Context) error) (Outcome, error) {
	mutErr := call(ctx)
	if mutErr != nil {
		mutErr = fmt.Errorf("error %s task: %w", gerund(op), mutErr)
	}

	out, loadErr := c.Load(ctx)
	out.Op = op

	if c.policy == PolicySurface {
		return out, errors.Join(mutErr, loadErr)
	}

	if mutErr != nil {
		c.warn(mutErr)
	}
	if loadErr != nil {
		c.warn(loadErr)
	}
	out.Warning = errors.Join(mutErr, out.Warning, loadErr)
	return out, nil
}

func (c *Client) warn(err error) {
	c.logger.Printf("warn: %v", err)
}

func gerund(op Op) string {
	switch op {
	case OpCreate:
		return "creating"
	case OpToggle:
		return "toggling"
	case OpDelete:
		return "deleting"
	default:
		return string(op) + "ing"
	}
}
