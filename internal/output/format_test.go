package output_test

import (
	"bytes"
	"testing"

	"gopkg.in/yaml.v3"

	"tasksync/internal/output"
	"tasksync/internal/service"
	"tasksync/internal/tasksync"
	"tasksync/internal/testutil"
)

func sampleEntries() []tasksync.Entry {
	return tasksync.Project([]service.Task{
		{ID: service.NumericID(1), Title: "Buy milk"},
		{ID: service.NumericID(2), Title: "Buy eggs", Completed: true},
	})
}

func TestTextView_Plain(t *testing.T) {
	var buf bytes.Buffer
	output.NewTextView(&buf).Render(sampleEntries())

	testutil.GoldenString(t, "text_list", buf.String())
}

func TestTextView_Strike(t *testing.T) {
	var buf bytes.Buffer
	output.NewTextView(&buf, output.WithStrike(true)).Render(sampleEntries())

	testutil.GoldenString(t, "text_list_strike", buf.String())
}

func TestTextView_JSON(t *testing.T) {
	var buf bytes.Buffer
	v := output.NewTextView(&buf, output.WithFormat(output.FormatJSON))
	v.Render(sampleEntries())

	if err := v.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.GoldenString(t, "json_list", buf.String())
}

func TestTextView_YAML(t *testing.T) {
	var buf bytes.Buffer
	v := output.NewTextView(&buf, output.WithFormat(output.FormatYAML))
	v.Render(sampleEntries())

	var got []map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid yaml: %v\n%s", err, buf.String())
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[1]["text"] != "Buy eggs" || got[1]["decoration"] != "line-through" || got[1]["delete_label"] != "Deletar" {
		t.Errorf("unexpected second entry: %v", got[1])
	}
	if got[0]["id"] != "1" {
		t.Errorf("expected id to stay a string scalar, got %#v", got[0]["id"])
	}
}

func TestTextView_Empty(t *testing.T) {
	var buf bytes.Buffer
	output.NewTextView(&buf).Render(nil)
	if buf.String() != "no tasks found\n" {
		t.Errorf("expected empty message, got %q", buf.String())
	}

	buf.Reset()
	output.NewTextView(&buf, output.WithQuiet(true)).Render(nil)
	if buf.String() != "" {
		t.Errorf("expected no output in quiet mode, got %q", buf.String())
	}

	buf.Reset()
	output.NewTextView(&buf, output.WithFormat(output.FormatJSON)).Render(nil)
	if buf.String() != "[]\n" {
		t.Errorf("expected empty JSON array, got %q", buf.String())
	}
}

func TestFormatEntry_NormalizesTitle(t *testing.T) {
	var buf bytes.Buffer
	output.FormatEntry(&buf, 12, tasksync.Entry{Text: "two\nlines"}, false)
	output.FormatEntry(&buf, 13, tasksync.Entry{Text: "  "}, false)

	expected := "  12  [ ] two lines\n  13  [ ] (untitled)\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]output.Format{"": output.FormatText, "TEXT": output.FormatText, "json": output.FormatJSON, " yaml": output.FormatYAML} {
		got, err := output.ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := output.ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}
