// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// All calls against the remote task collection go through this interface.
// The sync client and commands never talk HTTP directly.
type Service interface {
	// ListTasks returns the full task collection in server order.
	// A non-2xx response is reported as *StatusError.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask submits a new task. The server assigns the ID and the
	// completed flag.
	CreateTask(ctx context.Context, title string) error

	// UpdateTask sets the completed flag of a task.
	UpdateTask(ctx context.Context, id TaskID, completed bool) error

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id TaskID) error
}
