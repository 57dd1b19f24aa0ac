package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"tasksync/internal/config"
	"tasksync/internal/exitcode"
	"tasksync/internal/service"
)

func init() {
	Register(&ToggleCmd{mode: toggleFlip})
	Register(&ToggleCmd{mode: toggleDone})
	Register(&ToggleCmd{mode: toggleUndo})
}

type toggleMode int

const (
	toggleFlip toggleMode = iota
	toggleDone
	toggleUndo
)

// ToggleCmd implements the toggle, done and undo commands.
type ToggleCmd struct {
	mode toggleMode
	byID bool
}

// NewToggleCmd returns the flip variant (toggle).
func NewToggleCmd() *ToggleCmd { return &ToggleCmd{mode: toggleFlip} }

// NewDoneCmd returns the variant that marks tasks completed.
func NewDoneCmd() *ToggleCmd { return &ToggleCmd{mode: toggleDone} }

// NewUndoCmd returns the variant that marks tasks open.
func NewUndoCmd() *ToggleCmd { return &ToggleCmd{mode: toggleUndo} }

// SetByID makes the reference a server ID (for testing).
func (c *ToggleCmd) SetByID(byID bool) {
	c.byID = byID
}

func (c *ToggleCmd) Name() string {
	switch c.mode {
	case toggleDone:
		return "done"
	case toggleUndo:
		return "undo"
	default:
		return "toggle"
	}
}

func (c *ToggleCmd) Aliases() []string { return nil }

func (c *ToggleCmd) Synopsis() string {
	switch c.mode {
	case toggleDone:
		return "Mark a task completed"
	case toggleUndo:
		return "Mark a task open"
	default:
		return "Flip a task's completed flag"
	}
}

func (c *ToggleCmd) Usage() string      { return "tasksync " + c.Name() + " [--id] <ref>" }
func (c *ToggleCmd) NeedsBackend() bool { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.byID, "id", false, "")
}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	ref, err := ParseTaskRef(args, c.byID)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	ctx, cancel := withCommandTimeout(ctx, cfg)
	defer cancel()

	task, code := resolveTask(ctx, svc, ref, errOut)
	if code != exitcode.Success {
		return code
	}

	completed := !task.Completed
	switch c.mode {
	case toggleDone:
		completed = true
	case toggleUndo:
		completed = false
	}

	client := newSyncClient(cfg, svc, listView(cfg, out), errOut)
	if _, err := client.Toggle(ctx, task.ID, completed); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}

// resolveTask maps lookup failures to exit codes.
func resolveTask(ctx context.Context, svc service.Service, ref TaskRef, errOut io.Writer) (service.Task, int) {
	task, err := findTask(ctx, svc, ref)
	if err != nil {
		var nf errTaskNotFound
		if errors.As(err, &nf) {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return service.Task{}, exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return service.Task{}, exitcode.BackendError
	}
	return task, exitcode.Success
}
