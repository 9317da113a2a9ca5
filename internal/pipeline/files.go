package pipeline

import (
	"path/filepath"
	"strings"
)

// DisplayPath shortens path to be relative to baseDir when it lies below
// it. Paths are reported with forward slashes.
func DisplayPath(path, baseDir string) string {
	path = filepath.Clean(path)
	base := strings.TrimSpace(baseDir)
	if base != "" {
		if abs, err := filepath.Abs(base); err == nil {
			base = abs
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if rel, err := filepath.Rel(base, path); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			path = rel
		}
	}
	return filepath.ToSlash(path)
}
