package tasksync

import "tasksync/internal/service"

// Text decorations applied to an entry.
const (
	DecorationNone        = "none"
	DecorationLineThrough = "line-through"
)

// DeleteLabel is the label of the per-task delete action.
const DeleteLabel = "Deletar"

// Entry is the presentation-neutral rendering of one task.
type Entry struct {
	ID          service.TaskID `json:"id" yaml:"id"`
	Text        string         `json:"text" yaml:"text"`
	Checked     bool           `json:"checked" yaml:"checked"`
	Decoration  string         `json:"decoration" yaml:"decoration"`
	DeleteLabel string         `json:"deleteLabel" yaml:"delete_label"`
}

// Project maps a fetched collection to entries, one per task, in the order
// the server returned them.
func Project(tasks []service.Task) []Entry {
	entries := make([]Entry, 0, len(tasks))
	for _, t := range tasks {
		decoration := DecorationNone
		if t.Completed {
			decoration = DecorationLineThrough
		}
		entries = append(entries, Entry{
			ID:          t.ID,
			Text:        t.Title,
			Checked:     t.Completed,
			Decoration:  decoration,
			DeleteLabel: DeleteLabel,
		})
	}
	return entries
}
