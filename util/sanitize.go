package util

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var XSSPolicy = bluemonday.UGCPolicy()

// XSSSanitize sanitizes of HTML and returns the unescaped HTML
func XSSSanitize(val string) string {
	return html.UnescapeString(XSSPolicy.Sanitize(val))
}

// CleanBody prepares user-authored text for storage: sanitized and trimmed.
// An empty result means the input had no publishable content.
func CleanBody(val string) string {
	return strings.TrimSpace(XSSSanitize(val))
}
