package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateLogPath expands and cleans the diagnostic log location. An empty
// path is returned unchanged; callers treat it as "use the default".
func ValidateLogPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) > 4096 {
		return "", fmt.Errorf("path too long (max 4096 characters)")
	}

	for _, char := range path {
		if char == 0 {
			return "", fmt.Errorf("path contains null bytes")
		}
		if char < 32 && char != '\t' {
			return "", fmt.Errorf("path contains control characters")
		}
	}

	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return "", fmt.Errorf("path contains directory traversal")
		}
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	} else if strings.HasPrefix(path, "~") {
		return "", fmt.Errorf("tilde expansion not allowed or invalid tilde usage")
	}

	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("cannot make path absolute: %w", err)
		}
		path = abs
	}

	return filepath.Clean(path), nil
}
