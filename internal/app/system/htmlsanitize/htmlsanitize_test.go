package htmlsanitize

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "weekly tutoring session", "weekly tutoring session"},
		{"keeps formatting", "<p>met with <strong>counselor</strong></p>", "<p>met with <strong>counselor</strong></p>"},
		{"strips script", `before<script>alert("x")</script>after`, "beforeafter"},
		{"strips event handlers", `<a href="https://example.com" onclick="steal()">notes</a>`, ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input)
			if tt.name == "strips event handlers" {
				// bluemonday keeps the link but drops the handler; asserting
				// on the handler only, since rel attributes vary by version.
				if strings.Contains(got, "onclick") {
					t.Errorf("Sanitize(%q) = %q, still contains onclick", tt.input, got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeStripsIframes(t *testing.T) {
	got := Sanitize(`<iframe src="https://evil.example"></iframe>note`)
	if strings.Contains(got, "iframe") {
		t.Errorf("Sanitize left an iframe in: %q", got)
	}
}
