package config

import (
	"sort"
	"time"
)

// Profile is the built-in default set for one environment.
type Profile struct {
	BaseURL         string
	RequestTimeout  time.Duration
	ResponseTimeout time.Duration
	CommandTimeout  time.Duration
}

// DefaultEnv is used when no environment is selected.
const DefaultEnv = "production"

// Profiles are the built-in environments.
var Profiles = map[string]Profile{
	"production": {
		BaseURL:         "https://d128yqhncqex8w.cloudfront.net",
		RequestTimeout:  15 * time.Second,
		ResponseTimeout: 15 * time.Second,
		CommandTimeout:  15 * time.Second,
	},
	"staging": {
		BaseURL:         "http://app-cicd-alb-staging-886436950673.us-east-1.elb.amazonaws.com",
		RequestTimeout:  30 * time.Second,
		ResponseTimeout: 30 * time.Second,
		CommandTimeout:  30 * time.Second,
	},
	"local": {
		BaseURL:         "http://localhost:8080",
		RequestTimeout:  10 * time.Second,
		ResponseTimeout: 10 * time.Second,
		CommandTimeout:  10 * time.Second,
	},
}

// ProfileNames returns the built-in environment names, sorted.
func ProfileNames() []string {
	names := make([]string, 0, len(Profiles))
	for name := range Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
