package article

import (
	"regexp"
	"strings"
)

const wordsPerMinute = 200

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// ReadingTime estimates minutes to read markup: tags stripped, words counted
// on whitespace, divided by 200 and rounded up, never below one minute.
func ReadingTime(markup string) int {
	words := len(strings.Fields(tagPattern.ReplaceAllString(markup, "")))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
