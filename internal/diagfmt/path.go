package diagfmt

import (
	"path/filepath"
	"strings"

	"mofmt/internal/source"
)

// hasFile reports whether sp points into a file of fs.
func hasFile(fs *source.FileSet, sp source.Span) bool {
	return fs != nil && sp.File != source.NoFile && int(sp.File) < fs.Len()
}

func displayPath(path string, mode PathMode, base string) string {
	switch mode {
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return filepath.ToSlash(abs)
		}
		return path
	case PathModeRelative, PathModeAuto:
		if base == "" || !filepath.IsAbs(path) {
			return path
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return path
		}
		// выше базы в auto-режиме оставляем как есть
		if mode == PathModeAuto && strings.HasPrefix(rel, "..") {
			return path
		}
		return filepath.ToSlash(rel)
	}
	return path
}
