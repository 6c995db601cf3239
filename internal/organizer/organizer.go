// Package organizer relocates files into their destination subdirectories,
// or pretends to in a dry run.
package organizer

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"folderorg/internal/fsx"
	"folderorg/internal/ledger"
)

// MoveErrorType represents the type of move error.
type MoveErrorType string

const (
	// SourceNotFound indicates the source file does not exist.
	SourceNotFound MoveErrorType = "SOURCE_NOT_FOUND"
	// DestinationExists indicates a file already exists at the destination.
	DestinationExists MoveErrorType = "DESTINATION_EXISTS"
	// PermissionDenied indicates insufficient permissions for the operation.
	PermissionDenied MoveErrorType = "PERMISSION_DENIED"
	// DestinationCreation indicates the destination directory could not be made.
	DestinationCreation MoveErrorType = "DESTINATION_CREATION"
	// MoveFailed covers every other relocation failure.
	MoveFailed MoveErrorType = "MOVE_FAILED"
)

// MoveError represents an error that occurred during file movement.
type MoveError struct {
	Type MoveErrorType
	Path string
	Err  error
}

func (e *MoveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Path)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// Status is the kind of outcome a move attempt had.
type Status string

const (
	StatusMoved     Status = "MOVED"
	StatusSimulated Status = "SIMULATED"
	StatusFailed    Status = "FAILED"
)

// Outcome describes one move attempt.
type Outcome struct {
	Status          Status
	SourcePath      string
	DestinationDir  string
	DestinationPath string
	Err             error
}

// Mover performs moves for a single run and records the real ones in the
// run's ledger.
type Mover struct {
	log    *slog.Logger
	ledger *ledger.Ledger
	move   func(src, dst string) error
}

// NewMover returns a Mover that logs to log and appends to l.
func NewMover(log *slog.Logger, l *ledger.Ledger) *Mover {
	return &Mover{log: log, ledger: l, move: fsx.Move}
}

// WithMoveFunc replaces the function used to relocate files. Tests use it to
// simulate filesystem failures.
func (m *Mover) WithMoveFunc(fn func(src, dst string) error) *Mover {
	m.move = fn
	return m
}

// EnsureDestination creates destDir unless it already exists. In a dry run
// nothing is created. A directory made here is noted in the ledger so undo
// can remove it again.
func (m *Mover) EnsureDestination(destDir string, dryRun bool) error {
	if dryRun {
		return nil
	}
	created, err := fsx.EnsureDir(destDir)
	if err != nil {
		typ := DestinationCreation
		if os.IsPermission(err) {
			typ = PermissionDenied
		}
		return &MoveError{Type: typ, Path: destDir, Err: err}
	}
	if created {
		m.ledger.NoteCreatedDir(destDir)
	}
	return nil
}

// Move relocates filePath into destDir under its base name. In a dry run the
// filesystem is left untouched and nothing is recorded. A real move is
// appended to the ledger only when it succeeded. Every attempt is logged.
func (m *Mover) Move(filePath, destDir string, dryRun bool) Outcome {
	destPath := filepath.Join(destDir, filepath.Base(filePath))
	out := Outcome{
		SourcePath:      filePath,
		DestinationDir:  destDir,
		DestinationPath: destPath,
	}

	if dryRun {
		out.Status = StatusSimulated
		m.log.Info(fmt.Sprintf("[dry run] Would move file %s to %s", filePath, destDir))
		return out
	}

	if err := m.move(filePath, destPath); err != nil {
		out.Status = StatusFailed
		out.Err = classifyMoveError(filePath, destPath, err)
		m.log.Error(fmt.Sprintf("Error moving file %s to %s: %v", filePath, destDir, err))
		return out
	}

	m.ledger.Append(ledger.MoveRecord{Destination: destDir, Original: filePath})
	out.Status = StatusMoved
	m.log.Info(fmt.Sprintf("Moved file %s to %s", filePath, destDir))
	return out
}

// Fail records an attempt that never reached the filesystem, such as a file
// that could not be classified or whose destination could not be created.
func (m *Mover) Fail(filePath, destDir string, err error) Outcome {
	m.log.Error(fmt.Sprintf("Skipped file %s: %v", filePath, err))
	out := Outcome{Status: StatusFailed, SourcePath: filePath, DestinationDir: destDir, Err: err}
	if destDir != "" {
		out.DestinationPath = filepath.Join(destDir, filepath.Base(filePath))
	}
	return out
}

func classifyMoveError(src, dst string, err error) error {
	switch {
	case errors.Is(err, fsx.ErrDestinationExists):
		return &MoveError{Type: DestinationExists, Path: dst, Err: err}
	case errors.Is(err, os.ErrNotExist) && !fsx.Exists(src):
		return &MoveError{Type: SourceNotFound, Path: src, Err: err}
	case errors.Is(err, os.ErrPermission):
		return &MoveError{Type: PermissionDenied, Path: src, Err: err}
	default:
		return &MoveError{Type: MoveFailed, Path: src, Err: err}
	}
}

// MoveIntoNamesake handles a file whose destination directory has the file's
// own path, as with an extensionless file "c" going to "c/c". The file is
// parked under a hidden sibling name while the directory is created in its
// place.
func (m *Mover) MoveIntoNamesake(filePath string, dryRun bool) Outcome {
	destDir := filePath
	destPath := filepath.Join(destDir, filepath.Base(filePath))
	out := Outcome{SourcePath: filePath, DestinationDir: destDir, DestinationPath: destPath}

	if dryRun {
		out.Status = StatusSimulated
		m.log.Info(fmt.Sprintf("[dry run] Would move file %s to %s", filePath, destDir))
		return out
	}

	parked := fsx.ParkingPath(filePath)
	fail := func(err error) Outcome {
		out.Status = StatusFailed
		out.Err = classifyMoveError(filePath, destPath, err)
		m.log.Error(fmt.Sprintf("Error moving file %s to %s: %v", filePath, destDir, err))
		return out
	}

	if err := m.move(filePath, parked); err != nil {
		return fail(err)
	}
	if err := os.Mkdir(destDir, 0o755); err != nil {
		_ = m.move(parked, filePath)
		return fail(err)
	}
	if err := m.move(parked, destPath); err != nil {
		os.Remove(destDir)
		_ = m.move(parked, filePath)
		return fail(err)
	}

	m.ledger.NoteCreatedDir(destDir)
	m.ledger.Append(ledger.MoveRecord{Destination: destDir, Original: filePath})
	out.Status = StatusMoved
	m.log.Info(fmt.Sprintf("Moved file %s to %s", filePath, destDir))
	return out
}
