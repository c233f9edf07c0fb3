// Package sanitize cleans user-submitted text before it is stored.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richPolicy   = newRichPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

func newRichPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "br", "strong", "em", "u", "h1", "h2", "h3", "h4", "h5", "h6", "ul", "ol", "li")
	p.AllowAttrs("href", "title").OnElements("a")
	p.AllowStandardURLs()
	p.RequireNoFollowOnLinks(false)
	return p
}

// HTML keeps a small formatting allowlist (paragraphs, headings, lists,
// emphasis, links with href/title) and drops everything else.
func HTML(s string) string {
	return strings.TrimSpace(richPolicy.Sanitize(s))
}

// Text removes every tag, keeping only the text content.
func Text(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

// Escape trims and entity-encodes & < > " '.
func Escape(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
