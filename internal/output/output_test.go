package output

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"folderorg/internal/ledger"
	"folderorg/internal/orchestrator"
	"folderorg/internal/organizer"
)

func newTestOutput(verbose, tty bool) (*Output, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return New(Config{Verbose: verbose, Writer: &stdout, ErrWriter: &stderr, IsTTY: tty}), &stdout, &stderr
}

func TestVerboseOnlyWhenEnabled(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
	}{
		{"verbose disabled", false},
		{"verbose enabled", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, stdout, _ := newTestOutput(tt.verbose, false)
			out.Verbose("test message")

			got := strings.Contains(stdout.String(), "test message")
			if got != tt.verbose {
				t.Errorf("verbose=%v, output %q", tt.verbose, stdout.String())
			}
		})
	}
}

func TestErrorGoesToErrWriter(t *testing.T) {
	out, stdout, stderr := newTestOutput(false, false)
	out.Error("boom %d", 1)

	if stdout.Len() != 0 {
		t.Errorf("stdout should be empty, got %q", stdout.String())
	}
	if stderr.String() != "boom 1\n" {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestInfoAddsSingleNewline(t *testing.T) {
	out, stdout, _ := newTestOutput(false, false)
	out.Info("one")
	out.Info("two\n")

	if stdout.String() != "one\ntwo\n" {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestProgressLifecycle(t *testing.T) {
	out, stdout, _ := newTestOutput(false, true)

	out.StartProgress(10)
	out.UpdateProgress(5)
	if !strings.Contains(stdout.String(), "\rOrganizing file 5/10...") {
		t.Errorf("missing progress line: %q", stdout.String())
	}

	out.EndProgress()
	if !strings.HasSuffix(stdout.String(), clearLine) {
		t.Errorf("EndProgress should clear the line: %q", stdout.String())
	}
}

func TestInfoClearsActiveProgress(t *testing.T) {
	out, stdout, _ := newTestOutput(false, true)
	out.StartProgress(3)
	out.UpdateProgress(1)
	out.Info("done")

	if !strings.HasSuffix(stdout.String(), clearLine+"done\n") {
		t.Errorf("progress not cleared before message: %q", stdout.String())
	}
}

func TestProgressSuppression(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	counter := regexp.MustCompile(`Organizing file \d+/\d+\.\.\.`)

	properties.Property("progress is drawn only on a terminal outside verbose mode", prop.ForAll(
		func(current, total int, tty, verbose bool) bool {
			out, stdout, _ := newTestOutput(verbose, tty)
			out.StartProgress(total)
			out.UpdateProgress(current)

			drawn := counter.MatchString(stdout.String())
			return drawn == (tty && !verbose)
		},
		gen.IntRange(1, 1000),
		gen.IntRange(1, 1000),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestOnFileDone(t *testing.T) {
	moved := organizer.Outcome{Status: organizer.StatusMoved, SourcePath: "/d/a.txt", DestinationPath: "/d/txt/a.txt"}
	failed := organizer.Outcome{Status: organizer.StatusFailed, SourcePath: "/d/b.txt", Err: errors.New("permission denied")}

	t.Run("quiet run lists only failures", func(t *testing.T) {
		out, stdout, stderr := newTestOutput(false, false)
		out.OnStart(2)
		out.OnFileDone(1, 2, moved)
		out.OnFileDone(2, 2, failed)

		if stdout.Len() != 0 {
			t.Errorf("stdout = %q", stdout.String())
		}
		if !strings.Contains(stderr.String(), "/d/b.txt: permission denied") {
			t.Errorf("stderr = %q", stderr.String())
		}
	})

	t.Run("verbose run lists moves", func(t *testing.T) {
		out, stdout, _ := newTestOutput(true, false)
		out.OnFileDone(1, 1, moved)

		if !strings.Contains(stdout.String(), "/d/a.txt -> /d/txt/a.txt") {
			t.Errorf("stdout = %q", stdout.String())
		}
	})

	t.Run("watched file is always listed", func(t *testing.T) {
		out, stdout, _ := newTestOutput(false, true)
		out.OnFileDone(1, 0, moved)

		if !strings.Contains(stdout.String(), "/d/a.txt -> /d/txt/a.txt") {
			t.Errorf("stdout = %q", stdout.String())
		}
	})
}

func TestPrintSummary(t *testing.T) {
	out, stdout, _ := newTestOutput(true, false)
	out.PrintSummary(&orchestrator.RunSummary{
		Total:         3,
		Moved:         2,
		Failed:        1,
		Duration:      1500 * time.Millisecond,
		ByDestination: map[string]int{"txt": 2},
	}, false)

	text := stdout.String()
	for _, want := range []string{"Moved", "Failed", "1.5s", "Folder", "txt"} {
		if !strings.Contains(text, want) {
			t.Errorf("summary missing %q:\n%s", want, text)
		}
	}
}

func TestPrintSummaryDryRun(t *testing.T) {
	out, stdout, _ := newTestOutput(false, false)
	out.PrintSummary(&orchestrator.RunSummary{Total: 2, Simulated: 2}, true)

	if !strings.Contains(stdout.String(), "Would move") {
		t.Errorf("dry run summary should say 'Would move':\n%s", stdout.String())
	}
}

func TestPrintUndo(t *testing.T) {
	out, stdout, stderr := newTestOutput(false, false)
	out.PrintUndo(&ledger.UndoResult{
		Outcomes: []ledger.UndoOutcome{
			{Record: ledger.MoveRecord{Destination: "/d/txt", Original: "/d/a.txt"}},
			{Record: ledger.MoveRecord{Destination: "/d/jpg", Original: "/d/b.jpg"}, Err: errors.New("missing")},
		},
		Restored:    1,
		Failed:      1,
		RemovedDirs: []string{"/d/txt"},
	})

	if !strings.Contains(stderr.String(), "/d/jpg/b.jpg: missing") {
		t.Errorf("stderr = %q", stderr.String())
	}
	if !strings.Contains(stdout.String(), "Restored") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRenderCountsKeepsHeaderCase(t *testing.T) {
	got := renderCounts("Folder", "Files", []countRow{{"txt", 2}})

	if !strings.Contains(got, "Folder") || !strings.Contains(got, "Files") {
		t.Errorf("headers should keep their case:\n%s", got)
	}
	if strings.Contains(got, "FOLDER") {
		t.Errorf("headers must not be upper-cased:\n%s", got)
	}
}

func TestOnStartWithNoFilesDrawsNothing(t *testing.T) {
	out, stdout, _ := newTestOutput(false, true)
	out.OnStart(0)
	out.Info("summary")

	if stdout.String() != "summary\n" {
		t.Errorf("empty pass should leave no progress behind: %q", stdout.String())
	}
}
