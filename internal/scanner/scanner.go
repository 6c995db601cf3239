// Package scanner lists the files a run will organize.
package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"folderorg/internal/fsx"
)

// ScanErrorType represents the type of scanning error.
type ScanErrorType string

const (
	// DirectoryNotFound indicates the directory does not exist.
	DirectoryNotFound ScanErrorType = "DIRECTORY_NOT_FOUND"
	// NotADirectory indicates the path exists but is not a directory.
	NotADirectory ScanErrorType = "NOT_A_DIRECTORY"
	// PermissionDenied indicates insufficient permissions to read the directory.
	PermissionDenied ScanErrorType = "PERMISSION_DENIED"
	// ListFailed covers any other failure to read the directory.
	ListFailed ScanErrorType = "LIST_FAILED"
	// FileVanished indicates a listed file was gone (or no longer a regular
	// file) when its metadata was read.
	FileVanished ScanErrorType = "FILE_VANISHED"
)

// Symlink policy constants
const (
	SymlinkPolicyFollow = "follow"
	SymlinkPolicySkip   = "skip"
)

// ScanError represents an error that occurred during directory scanning.
type ScanError struct {
	Type ScanErrorType
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Path, e.Err)
	}
	return string(e.Type) + ": " + e.Path
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// ScanOptions configures scanning behavior.
type ScanOptions struct {
	SymlinkPolicy string // "follow" or "skip"
}

// DefaultScanOptions follows symlinks that point at regular files, so a link
// is organized like the file it names.
func DefaultScanOptions() ScanOptions {
	return ScanOptions{SymlinkPolicy: SymlinkPolicyFollow}
}

// FileEntry is a snapshot of one file at the moment it is classified.
type FileEntry struct {
	Name     string    // Filename only
	FullPath string    // Absolute path
	Created  time.Time // Zero until Snapshot fills it in
}

// Scan enumerates the regular files directly inside directory.
// Subdirectories are skipped; nothing is recursed into.
func Scan(directory string) ([]FileEntry, error) {
	return ScanWithOptions(directory, DefaultScanOptions())
}

// ScanWithOptions scans directory with configurable options.
func ScanWithOptions(directory string, opts ScanOptions) ([]FileEntry, error) {
	info, err := os.Stat(directory)
	if err != nil {
		return nil, classify(directory, err)
	}
	if !info.IsDir() {
		return nil, &ScanError{
			Type: NotADirectory,
			Path: directory,
			Err:  errors.New("path is not a directory"),
		}
	}

	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, classify(directory, err)
	}

	files := make([]FileEntry, 0, len(entries))
	for _, entry := range entries {
		fullPath := filepath.Join(directory, entry.Name())
		absPath, err := filepath.Abs(fullPath)
		if err != nil {
			absPath = fullPath
		}

		if entry.Type()&os.ModeSymlink != 0 && opts.SymlinkPolicy == SymlinkPolicySkip {
			continue
		}

		// Stat follows symlinks; entries that cannot be stated are skipped.
		info, err := os.Stat(fullPath)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		files = append(files, FileEntry{
			Name:     entry.Name(),
			FullPath: absPath,
		})
	}

	return files, nil
}

// Snapshot re-reads a listed file and records its creation time. It fails
// with FileVanished when the file was removed or replaced after listing.
func Snapshot(entry FileEntry) (FileEntry, error) {
	info, err := os.Stat(entry.FullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return entry, &ScanError{Type: FileVanished, Path: entry.FullPath, Err: err}
		}
		return entry, classify(entry.FullPath, err)
	}
	if !info.Mode().IsRegular() {
		return entry, &ScanError{
			Type: FileVanished,
			Path: entry.FullPath,
			Err:  errors.New("no longer a regular file"),
		}
	}

	created, err := fsx.CreationTime(entry.FullPath)
	if err != nil {
		return entry, err
	}
	entry.Created = created
	return entry, nil
}

// EntryFor builds a FileEntry for a single path, as the watcher sees it.
func EntryFor(path string) FileEntry {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	return FileEntry{Name: filepath.Base(absPath), FullPath: absPath}
}

func classify(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return &ScanError{Type: DirectoryNotFound, Path: path, Err: err}
	case os.IsPermission(err):
		return &ScanError{Type: PermissionDenied, Path: path, Err: err}
	default:
		return &ScanError{Type: ListFailed, Path: path, Err: err}
	}
}
