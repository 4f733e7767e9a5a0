package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Slugify lowercases and hyphenates a title into a URL-safe base slug.
// Characters outside [a-z0-9 -] are dropped, runs of whitespace and hyphens
// collapse into a single hyphen.
func Slugify(title string) string {
	lowered := strings.ToLower(title)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '-':
			b.WriteByte('-')
		}
	}

	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}

// NewSlug mints a slug from a title with a random 8-character disambiguator.
// Collisions are astronomically unlikely but still possible; the article
// service retries on a unique violation with a fresh suffix.
func NewSlug(title string) string {
	return Slugify(title) + "-" + uuid.New().String()[:8]
}
