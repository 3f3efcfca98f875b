// Package textutil turns backend article text into plain terminal text.
package textutil

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// PlainText strips every HTML tag from s, decodes entities and collapses
// whitespace.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(html.UnescapeString(strict.Sanitize(s))), " ")
}

// Excerpt returns the first sentence of s, or at most 150 runes of it.
func Excerpt(s string) string {
	s = PlainText(s)
	if s == "" {
		return ""
	}
	for i, c := range s {
		if c == '.' && i > 20 {
			return s[:i+1]
		}
	}
	runes := []rune(s)
	if len(runes) > 150 {
		return string(runes[:150]) + "..."
	}
	return s
}

// ReadingTime estimates minutes to read the full article from its
// description, assuming the article is three times longer and read at 200
// words per minute. Never less than one.
func ReadingTime(desc string) int {
	minutes := (len(strings.Fields(PlainText(desc))) * 3) / 200
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// Truncate shortens s to n runes, ending with "..." when cut.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
