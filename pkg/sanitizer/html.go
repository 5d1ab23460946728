package sanitizer

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	safePolicy   *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		safePolicy = bluemonday.NewPolicy()
		safePolicy.AllowStandardURLs()
		safePolicy.AllowElements(
			"p", "br", "hr",
			"strong", "b", "em", "i",
			"ul", "ol", "li",
			"h1", "h2", "h3",
			"code", "pre", "blockquote",
		)
		safePolicy.AllowAttrs("href").OnElements("a")
		safePolicy.RequireNoFollowOnLinks(true)
	})
}

// StripHTML removes every tag and returns plain text. Entities produced by
// the policy are decoded, so "&" stays "&" and placeholders like [NAME]
// pass through untouched.
func StripHTML(s string) string {
	initPolicies()
	return html.UnescapeString(strictPolicy.Sanitize(s))
}

// PlainText strips HTML and trims surrounding whitespace.
func PlainText(s string) string {
	return strings.TrimSpace(StripHTML(s))
}

// SanitizeHTML keeps basic formatting tags and links and drops everything
// else, including scripts, event handlers and javascript: URLs.
func SanitizeHTML(s string) string {
	initPolicies()
	return safePolicy.Sanitize(s)
}
