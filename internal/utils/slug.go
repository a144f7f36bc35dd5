// Package utils provides small shared helpers: URL slug generation and
// data-URI encoding/decoding.
package utils

import (
	"regexp"
	"strings"
)

var (
	// slugDisallowed matches everything but letters, digits, spaces and hyphens.
	slugDisallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	// whitespaceRun matches one or more whitespace characters.
	whitespaceRun = regexp.MustCompile(`\s+`)
	// hyphenRun matches two or more consecutive hyphens.
	hyphenRun = regexp.MustCompile(`-{2,}`)
)

// Slugify converts a title to a URL-safe slug: lowercase, strip everything
// except letters/digits/spaces/hyphens, collapse whitespace runs to single
// hyphens, collapse repeated hyphens, trim leading/trailing hyphens.
// Slugify is idempotent.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugDisallowed.ReplaceAllString(slug, "")
	slug = whitespaceRun.ReplaceAllString(slug, "-")
	slug = hyphenRun.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
