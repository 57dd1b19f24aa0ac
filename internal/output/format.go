// Package output provides formatters for CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"tasksync/internal/tasksync"
)

const (
	// EmptyMessage is printed for an empty list.
	EmptyMessage = "no tasks found"

	// ANSI SGR sequences used for the line-through decoration.
	strikeOn  = "\x1b[9m"
	strikeOff = "\x1b[0m"
)

// Format names a list output format.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a --format value.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid format: %s", s)
	}
}

// FormatEntry formats one list line.
// Format: "{N:>4}  [x] {TEXT}\n" (4-wide right-aligned number, two spaces,
// checkbox, title). With strike set, a line-through entry's text is wrapped
// in the ANSI strikethrough sequence.
func FormatEntry(w io.Writer, num int, e tasksync.Entry, strike bool) {
	box := "[ ]"
	if e.Checked {
		box = "[x]"
	}
	text := normalizeTitle(e.Text)
	if strike && e.Decoration == tasksync.DecorationLineThrough {
		text = strikeOn + text + strikeOff
	}
	fmt.Fprintf(w, "%4d  %s %s\n", num, box, text)
}

// WriteJSON writes entries as an indented JSON array.
func WriteJSON(w io.Writer, entries []tasksync.Entry) error {
	if entries == nil {
		entries = []tasksync.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// WriteYAML writes entries as a YAML sequence.
func WriteYAML(w io.Writer, entries []tasksync.Entry) error {
	if entries == nil {
		entries = []tasksync.Entry{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return err
	}
	return enc.Close()
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
