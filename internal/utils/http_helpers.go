package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var urlPattern = regexp.MustCompile(`^(https?|ftp)://[^\s/$.?#].[^\s]*$`)

// IsURL returns true if the given string appears to be an absolute URL
func IsURL(str string) bool {
	return urlPattern.MatchString(strings.ToLower(strings.TrimSpace(str)))
}

// ParseOptionalID parses an optional numeric query parameter. An empty
// string yields nil.
func ParseOptionalID(raw string) (*int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, false
	}
	return &id, true
}

// ParsePositiveInt parses raw as an integer >= 1, falling back to def when raw is empty.
func ParsePositiveInt(raw string, def int) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
