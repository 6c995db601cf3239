package watcher

import (
	"path/filepath"
	"strings"
)

// DefaultIgnorePatterns matches files that are usually still being written
// by another program.
func DefaultIgnorePatterns() []string {
	return []string{
		"*.tmp",
		"*.part",
		"*.download",
		"*.crdownload",
		"*.partial",
		".~*",
		"*.folderorg-swap",
	}
}

// FileFilter decides which paths the watcher hands on.
type FileFilter struct {
	patterns []string
}

// NewFileFilter returns a filter for patterns, or the defaults when empty.
func NewFileFilter(patterns []string) *FileFilter {
	if len(patterns) == 0 {
		patterns = DefaultIgnorePatterns()
	}
	return &FileFilter{patterns: patterns}
}

// ShouldIgnore matches the base name of path against the glob patterns.
// A bare ".ext" pattern matches case-insensitively as a suffix.
func (f *FileFilter) ShouldIgnore(path string) bool {
	name := filepath.Base(path)

	for _, pattern := range f.patterns {
		if matched, err := filepath.Match(pattern, name); err == nil && matched {
			return true
		}
		if strings.HasPrefix(pattern, ".") && !strings.ContainsAny(pattern, "*?[") {
			if strings.HasSuffix(strings.ToLower(name), strings.ToLower(pattern)) {
				return true
			}
		}
	}
	return false
}

// Patterns returns a copy of the active patterns.
func (f *FileFilter) Patterns() []string {
	out := make([]string, len(f.patterns))
	copy(out, f.patterns)
	return out
}
