// internal/app/system/htmlsanitize/htmlsanitize.go
// Package htmlsanitize strips markup from caller-supplied free text before
// it is stored and shown in the consumer app.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// bluemonday policies are safe for concurrent use once built.
var strict = bluemonday.StrictPolicy()

// Text removes every tag and returns plain, trimmed text. Entities that the
// policy escapes are decoded again so "Tom & Jerry" survives unchanged.
func Text(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// TextPtr applies Text to a patch field, leaving nil untouched.
func TextPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := Text(*p)
	return &v
}
