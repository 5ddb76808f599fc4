// Package normalize cleans up loosely formatted identifiers at input
// boundaries so the rest of the app can compare them directly.
package normalize

import "strings"

// Provider lowercases and trims an LMS provider name.
func Provider(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Level lowercases and trims an alert level.
func Level(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Tab lowercases and trims a dashboard tab name.
func Tab(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status lowercases and trims an intervention status.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
