// Package orchestrator drives one organizing run: it lists the target
// directory, classifies and moves each file, and offers a single undo of the
// moves it made.
package orchestrator

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"folderorg/internal/classifier"
	"folderorg/internal/ledger"
	"folderorg/internal/organizer"
	"folderorg/internal/scanner"
)

// State is the lifecycle position of a Run.
type State string

const (
	StateIdle       State = "IDLE"
	StateOrganizing State = "ORGANIZING"
	StateCompleted  State = "COMPLETED"
	StateUndoing    State = "UNDOING"
	StateDone       State = "DONE"
)

var (
	// ErrRunFinished is returned when organizing is requested after the run
	// has left the organizing phase.
	ErrRunFinished = errors.New("run has already finished organizing")
	// ErrNotOrganizing is returned by ProcessFile outside the organizing phase.
	ErrNotOrganizing = errors.New("run is not organizing")
	// ErrUndoUnavailable is returned when there is nothing to undo or the run
	// is not in a state that allows it.
	ErrUndoUnavailable = errors.New("undo is not available for this run")
	// ErrExcluded is returned by ProcessFile for paths the run never touches.
	ErrExcluded = errors.New("path is excluded from organizing")
)

// Options is the validated input of a run.
type Options struct {
	Directory string
	Mode      classifier.Mode
	DryRun    bool
	Scan      scanner.ScanOptions
	Exclude   []string // Absolute paths never organized, such as the activity log
}

// Observer receives progress notifications. Calls happen on the goroutine
// that drives the run.
type Observer interface {
	OnStart(total int)
	OnFileDone(idx, total int, out organizer.Outcome)
}

// RunResult is what a completed run hands back to its caller.
type RunResult struct {
	RunID     string
	DryRun    bool
	Outcomes  []organizer.Outcome
	Ledger    *ledger.Ledger
	StartTime time.Time
	EndTime   time.Time
}

// Run owns the ledger and state of a single organizing run.
type Run struct {
	opts     Options
	id       string
	log      *slog.Logger
	observer Observer
	ledger   *ledger.Ledger
	mover    *organizer.Mover
	state    State
	outcomes []organizer.Outcome
	exclude  map[string]bool
	started  time.Time
	ended    time.Time
}

// NewRun prepares a run. Nothing touches the filesystem until Organize or
// Begin is called.
func NewRun(opts Options, log *slog.Logger) *Run {
	if opts.Scan.SymlinkPolicy == "" {
		opts.Scan = scanner.DefaultScanOptions()
	}
	if abs, err := filepath.Abs(opts.Directory); err == nil {
		opts.Directory = abs
	}
	id := uuid.NewString()
	runLog := log.With("run", id)
	l := ledger.New()

	exclude := make(map[string]bool, len(opts.Exclude))
	for _, p := range opts.Exclude {
		if abs, err := filepath.Abs(p); err == nil {
			exclude[abs] = true
		}
	}

	return &Run{
		opts:    opts,
		id:      id,
		log:     runLog,
		ledger:  l,
		mover:   organizer.NewMover(runLog, l),
		state:   StateIdle,
		exclude: exclude,
	}
}

// WithObserver attaches a progress observer.
func (r *Run) WithObserver(o Observer) *Run {
	r.observer = o
	return r
}

// WithMoveFunc swaps the function used for real relocations.
func (r *Run) WithMoveFunc(fn func(src, dst string) error) *Run {
	r.mover.WithMoveFunc(fn)
	return r
}

// ID returns the run identifier that tags every log line of this run.
func (r *Run) ID() string { return r.id }

// State returns the current lifecycle state.
func (r *Run) State() State { return r.state }

// Ledger returns the moves recorded so far.
func (r *Run) Ledger() *ledger.Ledger { return r.ledger }

// Organize performs a full pass over the immediate files of the directory
// and completes the run. Only a failure to list the directory is returned
// as an error; per-file failures are reported in the outcomes.
func (r *Run) Organize() (*RunResult, error) {
	if err := r.Begin(); err != nil {
		return nil, err
	}
	if err := r.ProcessExisting(); err != nil {
		return nil, err
	}
	return r.Complete(), nil
}

// Begin moves the run from Idle to Organizing.
func (r *Run) Begin() error {
	if r.state != StateIdle {
		return ErrRunFinished
	}
	r.state = StateOrganizing
	r.started = time.Now()
	mode := "organize"
	if r.opts.DryRun {
		mode = "dry run"
	}
	r.log.Info(fmt.Sprintf("Starting %s of %s by %s", mode, r.opts.Directory, r.opts.Mode))
	return nil
}

// ProcessExisting organizes every regular file currently in the directory.
// A listing failure ends the run.
func (r *Run) ProcessExisting() error {
	if r.state != StateOrganizing {
		return ErrNotOrganizing
	}

	files, err := scanner.ScanWithOptions(r.opts.Directory, r.opts.Scan)
	if err != nil {
		r.state = StateDone
		r.log.Error(fmt.Sprintf("Failed to list %s: %v", r.opts.Directory, err))
		return fmt.Errorf("list %s: %w", r.opts.Directory, err)
	}

	pending := files[:0]
	for _, f := range files {
		if !r.exclude[f.FullPath] {
			pending = append(pending, f)
		}
	}
	// A file like "json" must become the directory json/ before any
	// "*.json" file needs that directory.
	sort.SliceStable(pending, func(i, j int) bool {
		return r.ownsDestination(pending[i]) && !r.ownsDestination(pending[j])
	})

	if r.observer != nil {
		r.observer.OnStart(len(pending))
	}
	for i, f := range pending {
		out, _ := r.ProcessFile(f)
		if r.observer != nil {
			r.observer.OnFileDone(i+1, len(pending), out)
		}
	}
	return nil
}

// ownsDestination reports whether entry's destination directory is its own
// path, as for an extensionless file sorted by extension.
func (r *Run) ownsDestination(entry scanner.FileEntry) bool {
	return r.opts.Mode == classifier.ByExtension && classifier.Extension(entry.Name) == entry.Name
}

// ProcessFile classifies one file, ensures its destination exists and moves
// it. Failures are isolated to the file and recorded in its outcome.
func (r *Run) ProcessFile(entry scanner.FileEntry) (organizer.Outcome, error) {
	if r.state != StateOrganizing {
		return organizer.Outcome{}, ErrNotOrganizing
	}
	if r.exclude[entry.FullPath] {
		return organizer.Outcome{}, ErrExcluded
	}

	out := r.processFile(entry)
	r.outcomes = append(r.outcomes, out)
	return out, nil
}

func (r *Run) processFile(entry scanner.FileEntry) organizer.Outcome {
	entry, err := scanner.Snapshot(entry)
	if err != nil {
		return r.mover.Fail(entry.FullPath, "", err)
	}

	name, err := classifier.Classify(entry, r.opts.Mode)
	if err != nil {
		return r.mover.Fail(entry.FullPath, "", err)
	}

	destDir := filepath.Join(r.opts.Directory, name)
	if destDir == entry.FullPath {
		return r.mover.MoveIntoNamesake(entry.FullPath, r.opts.DryRun)
	}
	if err := r.mover.EnsureDestination(destDir, r.opts.DryRun); err != nil {
		return r.mover.Fail(entry.FullPath, destDir, err)
	}

	return r.mover.Move(entry.FullPath, destDir, r.opts.DryRun)
}

// Complete closes the organizing phase and returns the run's result.
func (r *Run) Complete() *RunResult {
	if r.state == StateOrganizing {
		r.state = StateCompleted
		r.ended = time.Now()
		r.log.Info(fmt.Sprintf("Finished: %d files processed, %d moves recorded", len(r.outcomes), r.ledger.Len()))
	}
	return r.Result()
}

// Result returns a snapshot of the run's outcomes.
func (r *Run) Result() *RunResult {
	outcomes := make([]organizer.Outcome, len(r.outcomes))
	copy(outcomes, r.outcomes)
	return &RunResult{
		RunID:     r.id,
		DryRun:    r.opts.DryRun,
		Outcomes:  outcomes,
		Ledger:    r.ledger,
		StartTime: r.started,
		EndTime:   r.ended,
	}
}

// CanUndo reports whether Undo would do anything.
func (r *Run) CanUndo() bool {
	return r.state == StateCompleted && !r.ledger.Empty()
}

// Undo reverses the run's moves, newest first. It is allowed once, after
// organizing completed with at least one real move, and ends the run.
func (r *Run) Undo() (*ledger.UndoResult, error) {
	if !r.CanUndo() {
		return nil, ErrUndoUnavailable
	}
	r.state = StateUndoing
	r.log.Info(fmt.Sprintf("Undoing %d moves", r.ledger.Len()))

	result, err := r.ledger.Undo(r.log)
	r.state = StateDone
	if err != nil {
		return nil, err
	}
	r.log.Info(fmt.Sprintf("Undo finished: %d restored, %d failed", result.Restored, result.Failed))
	return result, nil
}

// Finish ends the run without undoing; the ledger is discarded.
func (r *Run) Finish() {
	if r.state == StateCompleted {
		r.state = StateDone
	}
}

// Organize is the one-shot form of a run: it organizes opts.Directory and
// returns the ledger of real moves for an optional later undo.
func Organize(opts Options, log *slog.Logger) (*ledger.Ledger, error) {
	run := NewRun(opts, log)
	if _, err := run.Organize(); err != nil {
		return nil, err
	}
	return run.Ledger(), nil
}
