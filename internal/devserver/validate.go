package devserver

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxTitleLen       = 200
	maxContentLen     = 10000
	maxDescriptionLen = 500
)

// cleanField trims s and enforces 1..max characters.
func cleanField(name, s string, max int) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%s: field cannot be empty or whitespace only", name)
	}
	if utf8.RuneCountInString(s) > max {
		return "", fmt.Errorf("%s: must be at most %d characters", name, max)
	}
	return s, nil
}
