// Package derive holds the pure helpers the authoring forms and the server
// share: slug suggestion from a title and reading time from a body.
package derive

import (
	"fmt"
	"regexp"
	"strings"
)

// WordsPerMinute is the reading rate used by EstimateReadTime
const WordsPerMinute = 200

var (
	disallowedRegex = regexp.MustCompile(`[^a-z0-9-]+`)
	hyphenRunRegex  = regexp.MustCompile(`-{2,}`)
)

// Slugify turns a human title into a URL-safe identifier.
// The result only contains [a-z0-9-], never repeats a hyphen and never
// starts or ends with one. Empty input yields an empty slug.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = strings.Join(strings.Fields(s), "-")
	s = disallowedRegex.ReplaceAllString(s, "")
	s = hyphenRunRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// WordCount counts whitespace-delimited words
func WordCount(body string) int {
	return len(strings.Fields(body))
}

// EstimateReadTime formats the reading time of body as "{n} min read",
// rounding up and never reporting less than one minute.
func EstimateReadTime(body string) string {
	return fmt.Sprintf("%d min read", ReadMinutes(body))
}

// ReadMinutes is the numeric part of EstimateReadTime
func ReadMinutes(body string) int {
	minutes := (WordCount(body) + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
