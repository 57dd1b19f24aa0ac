package commands

import (
	"strings"
	"testing"
)

func TestRegistry_FindByAlias(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&RmCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cmd, ok := r.Find("delete")
	if !ok {
		t.Fatal("expected alias to resolve")
	}
	if cmd.Name() != "rm" {
		t.Errorf("expected rm, got %s", cmd.Name())
	}
}

func TestRegistry_RejectsClash(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&AddCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := r.Register(&AddCmd{})
	if err == nil {
		t.Fatal("expected clash error")
	}
	if !strings.Contains(err.Error(), `"add"`) {
		t.Errorf("unexpected error %q", err)
	}
	if len(r.All()) != 1 {
		t.Errorf("expected one command, got %d", len(r.All()))
	}
}

func TestRegistry_AllSorted(t *testing.T) {
	r := NewRegistry()
	for _, c := range []Command{NewUndoCmd(), &AddCmd{}, NewDoneCmd()} {
		if err := r.Register(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	var names []string
	for _, c := range r.All() {
		names = append(names, c.Name())
	}
	if strings.Join(names, ",") != "add,done,undo" {
		t.Errorf("unexpected order %v", names)
	}
}
