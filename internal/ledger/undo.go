package ledger

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"folderorg/internal/fsx"
)

// moveFunc is replaced in tests to inject failures.
var moveFunc = fsx.Move

// ErrAlreadyUndone is returned when Undo is called on a consumed ledger.
var ErrAlreadyUndone = errors.New("ledger has already been undone")

// UndoReason classifies why a single record could not be reversed.
type UndoReason string

const (
	// SourceMissing: nothing is at the record's current path anymore.
	SourceMissing UndoReason = "SOURCE_MISSING"
	// OriginalOccupied: something new already sits at the original path.
	OriginalOccupied UndoReason = "ORIGINAL_OCCUPIED"
	// MoveFailed: the filesystem refused the move back.
	MoveFailed UndoReason = "MOVE_FAILED"
)

// UndoError describes a record that could not be restored.
type UndoError struct {
	Reason UndoReason
	Record MoveRecord
	Err    error
}

func (e *UndoError) Error() string {
	return fmt.Sprintf("%s: %s -> %s (%v)", e.Reason, e.Record.CurrentPath(), e.Record.Original, e.Err)
}

func (e *UndoError) Unwrap() error {
	return e.Err
}

// UndoOutcome is the result for one record. Err is nil when the file was
// restored.
type UndoOutcome struct {
	Record MoveRecord
	Err    error
}

// Restored reports whether the file is back at its original path.
func (o UndoOutcome) Restored() bool {
	return o.Err == nil
}

// UndoResult summarizes an undo pass.
type UndoResult struct {
	Outcomes    []UndoOutcome // Newest move first
	Restored    int
	Failed      int
	RemovedDirs []string
}

// Undo moves every recorded file back to its original path, newest move
// first. A failed record is logged and skipped; the rest are still tried.
// Directories this run created are removed afterwards if they ended up
// empty. The ledger is consumed: a second call returns ErrAlreadyUndone.
func (l *Ledger) Undo(log *slog.Logger) (*UndoResult, error) {
	if l.undone {
		return nil, ErrAlreadyUndone
	}
	l.undone = true

	result := &UndoResult{Outcomes: make([]UndoOutcome, 0, len(l.records))}
	for i := len(l.records) - 1; i >= 0; i-- {
		rec := l.records[i]
		err := undoRecord(rec)
		result.Outcomes = append(result.Outcomes, UndoOutcome{Record: rec, Err: err})
		if err != nil {
			result.Failed++
			log.Error(fmt.Sprintf("Error undoing move of %s back to %s: %v", rec.CurrentPath(), rec.Original, err))
			continue
		}
		result.Restored++
		log.Info(fmt.Sprintf("Undo: moved %s back to %s", rec.CurrentPath(), rec.Original))
	}
	l.records = nil

	for i := len(l.createdDirs) - 1; i >= 0; i-- {
		dir := l.createdDirs[i]
		if info, err := os.Lstat(dir); err != nil || !info.IsDir() {
			continue
		}
		if err := os.Remove(dir); err != nil {
			log.Info(fmt.Sprintf("Kept directory %s: %v", dir, err))
			continue
		}
		result.RemovedDirs = append(result.RemovedDirs, dir)
		log.Info(fmt.Sprintf("Undo: removed directory %s", dir))
	}
	l.createdDirs = nil

	return result, nil
}

func undoRecord(rec MoveRecord) error {
	current := rec.CurrentPath()
	if !fsx.Exists(current) {
		return &UndoError{Reason: SourceMissing, Record: rec, Err: os.ErrNotExist}
	}
	if filepath.Clean(rec.Destination) == filepath.Clean(rec.Original) {
		return undoNamesake(rec)
	}
	if fsx.Exists(rec.Original) {
		return &UndoError{Reason: OriginalOccupied, Record: rec, Err: fsx.ErrDestinationExists}
	}
	if err := moveFunc(current, rec.Original); err != nil {
		return &UndoError{Reason: MoveFailed, Record: rec, Err: err}
	}
	return nil
}

// undoNamesake reverses a move where the destination directory took the
// file's own path. The directory must be empty by the time this record is
// reached, which newest-first ordering guarantees for moves of this run.
func undoNamesake(rec MoveRecord) error {
	current := rec.CurrentPath()
	parked := fsx.ParkingPath(rec.Original)

	if err := moveFunc(current, parked); err != nil {
		return &UndoError{Reason: MoveFailed, Record: rec, Err: err}
	}
	if err := os.Remove(rec.Destination); err != nil {
		_ = moveFunc(parked, current)
		return &UndoError{Reason: OriginalOccupied, Record: rec, Err: err}
	}
	if err := moveFunc(parked, rec.Original); err != nil {
		return &UndoError{Reason: MoveFailed, Record: rec, Err: err}
	}
	return nil
}
