package util

import (
	"errors"
	"strings"
)

// SanitizeDirName turns a repository owner or name into a string safe to use
// as a temp directory prefix. Traversal patterns are rejected outright.
func SanitizeDirName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid directory name")
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, "*", "_")
	if s == "" {
		return "", errors.New("invalid directory name")
	}
	return s, nil
}
