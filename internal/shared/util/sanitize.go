package util

import (
	"errors"
	"strings"
)

// ErrInvalidFileName is returned when nothing usable is left of a file name.
var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName replaces path separators and collapses ".." runs so the
// result is a single path segment.
func SanitizeFileName(name string) (string, error) {
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	for strings.Contains(s, "..") {
		s = strings.ReplaceAll(s, "..", "_")
	}
	if s == "" || s == "." {
		return "", ErrInvalidFileName
	}
	return s, nil
}
