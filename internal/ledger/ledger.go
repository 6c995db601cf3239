// Package ledger records the moves a run performed so they can be reversed.
// A Ledger lives for one run only and is never written to disk.
package ledger

import "path/filepath"

// MoveRecord is one completed real move: the file that was at Original now
// lives in Destination under the same base name.
type MoveRecord struct {
	Destination string
	Original    string
}

// CurrentPath is where the moved file is expected to be now.
func (r MoveRecord) CurrentPath() string {
	return filepath.Join(r.Destination, filepath.Base(r.Original))
}

// Ledger is the ordered list of moves made during a run, oldest first.
// A record is present only while its file sits at CurrentPath and has not
// been undone.
type Ledger struct {
	records     []MoveRecord
	createdDirs []string
	undone      bool
}

// New returns an empty Ledger.
func New() *Ledger {
	return &Ledger{}
}

// Append records a completed move.
func (l *Ledger) Append(rec MoveRecord) {
	l.records = append(l.records, rec)
}

// NoteCreatedDir remembers that this run created dir, so undo can remove it
// again once it is empty.
func (l *Ledger) NoteCreatedDir(dir string) {
	for _, d := range l.createdDirs {
		if d == dir {
			return
		}
	}
	l.createdDirs = append(l.createdDirs, dir)
}

// Len returns the number of undoable moves.
func (l *Ledger) Len() int {
	if l == nil {
		return 0
	}
	return len(l.records)
}

// Empty reports whether there is nothing to undo.
func (l *Ledger) Empty() bool {
	return l.Len() == 0
}

// Records returns a copy of the records in chronological order.
func (l *Ledger) Records() []MoveRecord {
	out := make([]MoveRecord, len(l.records))
	copy(out, l.records)
	return out
}

// CreatedDirs returns the directories this run created, in creation order.
func (l *Ledger) CreatedDirs() []string {
	out := make([]string, len(l.createdDirs))
	copy(out, l.createdDirs)
	return out
}

// Undone reports whether Undo has already consumed this ledger.
func (l *Ledger) Undone() bool {
	return l.undone
}
