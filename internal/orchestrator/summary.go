package orchestrator

import (
	"path/filepath"
	"time"

	"folderorg/internal/organizer"
)

// RunSummary contains statistics from a run.
type RunSummary struct {
	Total         int            // Files attempted
	Moved         int            // Files actually relocated
	Simulated     int            // Files a dry run would have relocated
	Failed        int            // Files left in place because of an error
	Duration      time.Duration  // Total processing time
	ByDestination map[string]int // Per-destination counts (only populated in verbose mode)
}

// GenerateSummary creates a summary from a run result.
// When verbose is true, ByDestination is populated with a per-folder breakdown
// of moved or simulated files.
func GenerateSummary(result *RunResult, verbose bool) *RunSummary {
	if result == nil {
		return &RunSummary{}
	}

	summary := &RunSummary{
		Total:    len(result.Outcomes),
		Duration: result.EndTime.Sub(result.StartTime),
	}
	if summary.Duration < 0 {
		summary.Duration = 0
	}
	if verbose {
		summary.ByDestination = make(map[string]int)
	}

	for _, out := range result.Outcomes {
		switch out.Status {
		case organizer.StatusMoved:
			summary.Moved++
		case organizer.StatusSimulated:
			summary.Simulated++
		case organizer.StatusFailed:
			summary.Failed++
			continue
		}
		if verbose {
			summary.ByDestination[filepath.Base(out.DestinationDir)]++
		}
	}

	return summary
}

// HasErrors returns true if any file could not be organized.
func (s *RunSummary) HasErrors() bool {
	return s.Failed > 0
}
