package service

import (
	"regexp"
	"strings"
)

var openingFence = regexp.MustCompile("(?i)```html")

const closingFence = "```"

// SanitizeRecipe strips the markdown code fences providers sometimes wrap
// around the HTML fragment. The markup itself is returned untouched.
func SanitizeRecipe(raw string) string {
	out := raw
	for {
		next := strings.ReplaceAll(openingFence.ReplaceAllString(out, ""), closingFence, "")
		// Removing one marker can join backticks into another, so repeat until stable.
		if next == out {
			return out
		}
		out = next
	}
}
