package utils

import (
	"os"
	"os/user"
)

const unknownActor = "unknown"

// Actor identifies who is running the current process for the audit trail.
// Lookups that fail fall back to the environment and then to "unknown", so
// an audited operation is never blocked by a missing passwd entry.
func Actor() (username, hostname string) {
	username = unknownActor
	if u, err := user.Current(); err == nil && u.Username != "" {
		username = u.Username
	} else if v := os.Getenv("USER"); v != "" {
		username = v
	} else if v := os.Getenv("USERNAME"); v != "" {
		username = v
	}

	hostname = unknownActor
	if h, err := os.Hostname(); err == nil && h != "" {
		hostname = h
	}
	return username, hostname
}
