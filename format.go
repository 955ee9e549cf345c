package main

import (
	"strings"
)

// preview cuts text at a line boundary once limit bytes are reached. It
// reports whether anything was left out.
func preview(text string, limit int) (string, bool) {
	if len(text) <= limit {
		return text, false
	}

	b := strings.Builder{}
	b.Grow(limit)

	for i, line := range strings.Split(text, "\n") {
		if len(line)+b.Len() > limit {
			b.WriteString("\n*More output omitted*")
			return b.String(), true
		}
		if i > 0 {
			b.WriteRune('\n')
		}
		b.WriteString(line)
	}
	return b.String(), false
}
