// Package classifier maps a file to the name of the subdirectory it belongs in.
package classifier

import (
	"fmt"
	"strings"
	"time"

	"folderorg/internal/scanner"
)

// Mode selects how files are grouped into destination subdirectories.
type Mode string

const (
	// ByExtension groups files by the segment after the last dot in their name.
	ByExtension Mode = "by-extension"
	// ByDate groups files by their creation date (YYYY-MM-DD, local time).
	ByDate Mode = "by-date"
)

// DateLayout is the folder name layout used by ByDate.
const DateLayout = "2006-01-02"

// ClassificationError reports that a file could not be assigned a destination.
type ClassificationError struct {
	Path   string
	Reason string
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("cannot classify %s: %s", e.Path, e.Reason)
}

// ParseMode accepts the canonical mode names as well as the short "type" and
// "date" aliases.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "by-extension", "extension", "type":
		return ByExtension, nil
	case "by-date", "date":
		return ByDate, nil
	default:
		return "", fmt.Errorf("unknown sort mode %q (want by-extension or by-date)", s)
	}
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return m == ByExtension || m == ByDate
}

func (m Mode) String() string {
	return string(m)
}

// Classify returns the destination subdirectory name for a file.
// ByDate requires entry.Created to be set; a zero timestamp means the
// metadata read failed upstream and yields a ClassificationError.
func Classify(entry scanner.FileEntry, mode Mode) (string, error) {
	switch mode {
	case ByExtension:
		return Extension(entry.Name), nil
	case ByDate:
		if entry.Created.IsZero() {
			return "", &ClassificationError{Path: entry.FullPath, Reason: "creation time unavailable"}
		}
		return DateFolder(entry.Created), nil
	default:
		return "", &ClassificationError{Path: entry.FullPath, Reason: fmt.Sprintf("unknown mode %q", mode)}
	}
}

// Extension returns the last dot-separated segment of name. A name without a
// dot is its own extension, so "c" yields "c" and "archive.tar.gz" yields "gz".
func Extension(name string) string {
	return name[strings.LastIndex(name, ".")+1:]
}

// DateFolder formats t as a YYYY-MM-DD folder name in local time.
func DateFolder(t time.Time) string {
	return t.Local().Format(DateLayout)
}
