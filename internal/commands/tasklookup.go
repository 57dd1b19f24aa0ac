package commands

import (
	"context"
	"fmt"

	"tasksync/internal/service"
)

// errTaskNotFound marks a reference that matches nothing in the listing.
type errTaskNotFound struct {
	ref TaskRef
}

func (e errTaskNotFound) Error() string {
	if e.ref.ByID {
		return fmt.Sprintf("task not found: %s", e.ref.ID)
	}
	return fmt.Sprintf("task number out of range: %d", e.ref.Num)
}

// findTask resolves a reference against one fetch of the collection.
// Positions follow server order, as printed by the list command.
func findTask(ctx context.Context, svc service.Service, ref TaskRef) (service.Task, error) {
	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return service.Task{}, err
	}

	if ref.ByID {
		for _, t := range tasks {
			if t.ID.String() == ref.ID.String() {
				return t, nil
			}
		}
		return service.Task{}, errTaskNotFound{ref: ref}
	}

	if ref.Num < 1 || ref.Num > len(tasks) {
		return service.Task{}, errTaskNotFound{ref: ref}
	}
	return tasks[ref.Num-1], nil
}
