// Package output renders run progress, per-file results and summaries on the
// terminal. The activity log is written separately by actlog.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"

	"folderorg/internal/organizer"
)

const clearLine = "\r\033[K"

// Config holds output configuration.
type Config struct {
	Verbose   bool      // List every file, not only failures
	Writer    io.Writer // Defaults to os.Stdout
	ErrWriter io.Writer // Defaults to os.Stderr
	IsTTY     bool      // Progress is drawn only on a terminal
}

// DefaultConfig writes to stdout and stderr and detects whether stdout is a
// terminal.
func DefaultConfig() Config {
	return Config{
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		IsTTY:     term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// Output prints user-facing messages and an in-place progress counter.
// It implements the orchestrator's Observer.
type Output struct {
	config Config

	mu       sync.Mutex
	progress bool
	total    int
}

// New creates an Output. Nil writers fall back to stdout and stderr.
func New(config Config) *Output {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}
	if config.ErrWriter == nil {
		config.ErrWriter = os.Stderr
	}
	return &Output{config: config}
}

func (o *Output) println(w io.Writer, format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.progress {
		fmt.Fprint(o.config.Writer, clearLine)
	}
	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprint(w, msg)
}

// Verbose prints only in verbose mode.
func (o *Output) Verbose(format string, args ...any) {
	if o.config.Verbose {
		o.println(o.config.Writer, format, args...)
	}
}

// Info always prints.
func (o *Output) Info(format string, args ...any) {
	o.println(o.config.Writer, format, args...)
}

// Error prints to ErrWriter.
func (o *Output) Error(format string, args ...any) {
	o.println(o.config.ErrWriter, format, args...)
}

// progressEnabled is false off a terminal and in verbose mode, where the
// per-file lines already show progress.
func (o *Output) progressEnabled() bool {
	return o.config.IsTTY && !o.config.Verbose
}

// StartProgress begins a counter over total files.
func (o *Output) StartProgress(total int) {
	if !o.progressEnabled() {
		return
	}
	o.mu.Lock()
	o.progress = true
	o.total = total
	o.mu.Unlock()
}

// UpdateProgress redraws the counter in place.
func (o *Output) UpdateProgress(current int) {
	if !o.progressEnabled() {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.progress {
		fmt.Fprintf(o.config.Writer, "\rOrganizing file %d/%d...", current, o.total)
	}
}

// EndProgress erases the counter.
func (o *Output) EndProgress() {
	if !o.progressEnabled() {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.progress {
		o.progress = false
		fmt.Fprint(o.config.Writer, clearLine)
	}
}

// OnStart begins progress for a pass over total files. An empty pass draws
// nothing.
func (o *Output) OnStart(total int) {
	if total > 0 {
		o.StartProgress(total)
	}
}

// OnFileDone reports one processed file. Failures always reach ErrWriter.
// Moves are listed in verbose mode, or always when total is zero, which
// marks a file that arrived while watching.
func (o *Output) OnFileDone(idx, total int, out organizer.Outcome) {
	switch {
	case out.Status == organizer.StatusFailed:
		o.Error("✗ %s: %v", out.SourcePath, out.Err)
	case out.Status == organizer.StatusSimulated:
		o.Verbose("~ %s -> %s", out.SourcePath, out.DestinationPath)
	case total == 0:
		o.Info("✓ %s -> %s", out.SourcePath, out.DestinationPath)
	default:
		o.Verbose("✓ %s -> %s", out.SourcePath, out.DestinationPath)
	}

	if total > 0 {
		o.UpdateProgress(idx)
		if idx == total {
			o.EndProgress()
		}
	}
}
