package service

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Task represents a single server-owned task.
type Task struct {
	ID        TaskID `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// TaskID is an opaque, server-assigned identifier.
// Backends hand out either JSON strings or JSON numbers; both decode here
// and encode back in the form they arrived in.
type TaskID struct {
	value   string
	numeric bool
}

// StringID returns a TaskID that encodes as a JSON string.
func StringID(s string) TaskID {
	return TaskID{value: s}
}

// NumericID returns a TaskID that encodes as a JSON number.
func NumericID(n int64) TaskID {
	return TaskID{value: fmt.Sprintf("%d", n), numeric: true}
}

// String returns the identifier as it appears in URLs.
func (id TaskID) String() string {
	return id.value
}

// IsZero reports whether the ID is empty.
func (id TaskID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler.
func (id TaskID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *TaskID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = TaskID{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid task id: %w", err)
		}
		*id = TaskID{value: s}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid task id: %s", data)
	}
	*id = TaskID{value: n.String(), numeric: true}
	return nil
}

// MarshalYAML renders the ID as a plain scalar.
func (id TaskID) MarshalYAML() (interface{}, error) {
	return id.value, nil
}
