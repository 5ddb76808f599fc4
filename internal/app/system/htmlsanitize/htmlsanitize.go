// Package htmlsanitize strips dangerous markup from user-entered HTML.
// Intervention notes are the only rich-text input in the app; everything
// else is treated as plain text.
package htmlsanitize

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	once   sync.Once
	policy *bluemonday.Policy
)

// Sanitize returns s with everything outside bluemonday's UGC policy
// removed: basic formatting and links survive, scripts and event handlers
// do not.
func Sanitize(s string) string {
	once.Do(func() {
		policy = bluemonday.UGCPolicy()
	})
	return policy.Sanitize(s)
}
