// Package timeouts provides centralized timeout values for handler and
// client operations. Used with context.WithTimeout for database access and
// upstream calls so limits stay consistent across the app.
//
// Guidelines:
//   - Ping: health checks and connectivity verification
//   - Short: single-document reads or lookups
//   - Medium: list queries and moderate writes
//   - Long: heavier writes and upstream alert API calls
//   - Upload: CSV analysis round trips to the prediction service
package timeouts

import "time"

const (
	ping   = 2 * time.Second
	short  = 5 * time.Second
	medium = 10 * time.Second
	long   = 30 * time.Second
	upload = 90 * time.Second
)

// Ping returns the timeout for health checks.
func Ping() time.Duration { return ping }

// Short returns the timeout for simple single-document operations.
func Short() time.Duration { return short }

// Medium returns the timeout for list queries and moderate writes.
func Medium() time.Duration { return medium }

// Long returns the timeout for heavier writes and upstream API calls.
func Long() time.Duration { return long }

// Upload returns the timeout for CSV analysis round trips, which include
// the prediction model's scoring time.
func Upload() time.Duration { return upload }
