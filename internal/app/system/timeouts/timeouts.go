// Package timeouts centralizes the context deadlines used around store
// operations in HTTP handlers.
//
// Guidelines:
//   - Ping: health checks and connectivity verification
//   - Short: single-document reads or lookups
//   - Medium: list queries and simple writes
//   - Long: writes that touch multiple collections (cascade deletes)
package timeouts

import "time"

const (
	ping   = 2 * time.Second
	short  = 5 * time.Second
	medium = 10 * time.Second
	long   = 30 * time.Second
)

// Ping returns the timeout for connectivity checks.
func Ping() time.Duration { return ping }

// Short returns the timeout for single-document reads.
// Examples: get by ID, lookup by email.
func Short() time.Duration { return short }

// Medium returns the timeout for list queries and simple writes.
func Medium() time.Duration { return medium }

// Long returns the timeout for multi-collection writes.
// Examples: account deletion with report cascade.
func Long() time.Duration { return long }
