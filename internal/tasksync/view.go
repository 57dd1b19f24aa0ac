package tasksync

import "sync"

// View is the surface a Client renders into.
// Render must replace the whole list; it is never asked to patch.
type View interface {
	Render(entries []Entry)
}

// ViewFunc adapts a function to View.
type ViewFunc func(entries []Entry)

// Render implements View.
func (f ViewFunc) Render(entries []Entry) { f(entries) }

// ListView is an in-memory list container. It is safe for concurrent use;
// each Render swaps the whole list at once.
type ListView struct {
	mu      sync.RWMutex
	entries []Entry
	renders int
}

// NewListView returns an empty, never-rendered list.
func NewListView() *ListView {
	return &ListView{}
}

// Render implements View.
func (v *ListView) Render(entries []Entry) {
	cp := make([]Entry, len(entries))
	copy(cp, entries)

	v.mu.Lock()
	v.entries = cp
	v.renders++
	v.mu.Unlock()
}

// Entries returns a copy of the current list.
func (v *ListView) Entries() []Entry {
	v.mu.RLock()
	defer v.mu.RUnlock()
	cp := make([]Entry, len(v.entries))
	copy(cp, v.entries)
	return cp
}

// Renders returns how many times the list has been replaced.
func (v *ListView) Renders() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.renders
}

// Find returns the first entry whose text equals text.
func (v *ListView) Find(text string) (Entry, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	for _, e := range v.entries {
		if e.Text == text {
			return e, true
		}
	}
	return Entry{}, false
}
