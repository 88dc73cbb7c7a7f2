package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateSlug derives a URL-safe slug from name with a random suffix so two
// organizations with the same name never collide.
func GenerateSlug(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	base := strings.TrimSuffix(b.String(), "-")
	if len(base) > 48 {
		base = strings.TrimSuffix(base[:48], "-")
	}
	if base == "" {
		base = "org"
	}
	return base + "-" + uuid.NewString()[:8]
}
