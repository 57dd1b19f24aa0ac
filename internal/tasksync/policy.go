package tasksync

import (
	"fmt"
	"strings"
)

// ErrorPolicy decides what happens to failures the view cannot show.
type ErrorPolicy string

const (
	// PolicyLog logs transport failures and every mutation failure as
	// warnings and swallows them. A non-2xx answer to a load is still
	// returned. The view simply stays stale.
	PolicyLog ErrorPolicy = "log"

	// PolicySurface returns every failure to the caller. Mutations still
	// reload before returning.
	PolicySurface ErrorPolicy = "surface"
)

// ParseErrorPolicy parses a policy name. Empty means PolicyLog.
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch ErrorPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyLog:
		return PolicyLog, nil
	case PolicySurface:
		return PolicySurface, nil
	default:
		return "", fmt.Errorf("invalid error policy: %s (want %s or %s)", s, PolicyLog, PolicySurface)
	}
}

// Op names a client operation.
type Op string

// Operations.
const (
	OpLoad   Op = "load"
	OpCreate Op = "create"
	OpToggle Op = "toggle"
	OpDelete Op = "delete"
)

// Outcome describes what an operation did to the view.
type Outcome struct {
	Op Op

	// Skipped is set when Create was given a blank title. No request was sent.
	Skipped bool

	// Rendered is set when a reload succeeded and replaced the view.
	Rendered bool

	// Tasks is the number of entries rendered by that reload.
	Tasks int

	// Warning holds failures that were logged and swallowed under PolicyLog.
	Warning error
}
