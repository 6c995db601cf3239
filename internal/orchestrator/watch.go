package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"folderorg/internal/scanner"
	"folderorg/internal/watcher"
)

// Watch organizes the files already in the directory and then every file w
// reports, one at a time, until ctx is cancelled. The whole session is one
// run: it returns completed, with a single ledger covering every move.
func (r *Run) Watch(ctx context.Context, w *watcher.Watcher) (*RunResult, error) {
	if err := r.Begin(); err != nil {
		return nil, err
	}
	if err := w.Start(r.opts.Directory); err != nil {
		r.state = StateDone
		r.log.Error(fmt.Sprintf("Failed to watch %s: %v", r.opts.Directory, err))
		return nil, fmt.Errorf("watch %s: %w", r.opts.Directory, err)
	}
	defer w.Stop()

	if err := r.ProcessExisting(); err != nil {
		return nil, err
	}
	r.log.Info(fmt.Sprintf("Watching %s for new files", r.opts.Directory))

	processed := 0
	for {
		select {
		case <-ctx.Done():
			return r.Complete(), nil
		case path := <-w.Paths():
			out, err := r.ProcessFile(scanner.EntryFor(path))
			if errors.Is(err, ErrExcluded) {
				continue
			}
			processed++
			if r.observer != nil {
				r.observer.OnFileDone(processed, 0, out)
			}
		}
	}
}
