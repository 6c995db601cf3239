package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliResult struct {
	stdout string
	stderr string
	err    error
}

// runCLI executes the root command with args. input feeds the undo prompt and
// interactive decides whether the prompt is offered at all.
func runCLI(t *testing.T, input string, interactive bool, args ...string) cliResult {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	var stdout, stderr bytes.Buffer
	ctx := newCommandContext(strings.NewReader(input), &stdout, &stderr)
	ctx.isTTY = false
	ctx.interactive = func() bool { return interactive }

	cmd := newRootCommand(ctx)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestOrganizeByType(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(t.TempDir(), "activity.log")
	writeFiles(t, dir, "a.txt", "b.jpg")

	res := runCLI(t, "", false, dir, "--log-file", logFile)
	if res.err != nil {
		t.Fatalf("unexpected error: %v\n%s", res.err, res.stderr)
	}

	if !exists(filepath.Join(dir, "txt", "a.txt")) || !exists(filepath.Join(dir, "jpg", "b.jpg")) {
		t.Error("files were not organized by type")
	}
	if !strings.Contains(res.stdout, "Moved") {
		t.Errorf("summary missing from stdout:\n%s", res.stdout)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("activity log not written: %v", err)
	}
	if strings.Count(string(data), "Moved file") != 2 {
		t.Errorf("expected two move lines in the log:\n%s", data)
	}
}

func TestDryRunMovesNothing(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(t.TempDir(), "activity.log")
	writeFiles(t, dir, "a.txt")

	res := runCLI(t, "y\n", true, dir, "--dry-run", "--log-file", logFile)
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}

	if !exists(filepath.Join(dir, "a.txt")) || exists(filepath.Join(dir, "txt")) {
		t.Error("dry run must not move files or create folders")
	}
	if strings.Contains(res.stdout, "Undo") && strings.Contains(res.stdout, "[y/N]") {
		t.Error("dry run must not offer undo")
	}
	data, _ := os.ReadFile(logFile)
	if !strings.Contains(string(data), "[dry run] Would move file") {
		t.Errorf("dry run line missing from log:\n%s", data)
	}
}

func TestUndoWhenConfirmed(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(t.TempDir(), "activity.log")
	writeFiles(t, dir, "a.txt", "b.jpg")

	res := runCLI(t, "yes\n", true, dir, "--log-file", logFile)
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}

	if !strings.Contains(res.stdout, "Undo 2 moves?") {
		t.Errorf("undo prompt missing:\n%s", res.stdout)
	}
	if !exists(filepath.Join(dir, "a.txt")) || !exists(filepath.Join(dir, "b.jpg")) {
		t.Error("files were not restored")
	}
	if exists(filepath.Join(dir, "txt")) || exists(filepath.Join(dir, "jpg")) {
		t.Error("folders created by the run should be removed on undo")
	}
}

func TestUndoDeclined(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.txt")

	res := runCLI(t, "n\n", true, dir, "--log-file", filepath.Join(t.TempDir(), "a.log"))
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	if !exists(filepath.Join(dir, "txt", "a.txt")) {
		t.Error("declined undo must keep the moves")
	}
}

func TestUndoNotOfferedWithoutTerminal(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.txt")

	res := runCLI(t, "y\n", false, dir, "--log-file", filepath.Join(t.TempDir(), "a.log"))
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	if strings.Contains(res.stdout, "[y/N]") {
		t.Error("undo should not be offered when stdin is not a terminal")
	}
	if !exists(filepath.Join(dir, "txt", "a.txt")) {
		t.Error("moves should stand")
	}
}

func TestUndoAlways(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.txt")

	res := runCLI(t, "", false, dir, "--undo", "always", "--log-file", filepath.Join(t.TempDir(), "a.log"))
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	if !exists(filepath.Join(dir, "a.txt")) {
		t.Error("undo=always should restore the file")
	}
}

func TestSortByDate(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.txt")

	res := runCLI(t, "", false, dir, "--sort", "date", "--log-file", filepath.Join(t.TempDir(), "a.log"))
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !entries[0].IsDir() || len(entries[0].Name()) != len("2006-01-02") {
		t.Fatalf("expected a single date folder, got %v", entries)
	}
	if !exists(filepath.Join(dir, entries[0].Name(), "a.txt")) {
		t.Error("file not inside the date folder")
	}
}

func TestLogFileInsideDirectoryIsLeftAlone(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.txt")
	logFile := filepath.Join(dir, "file_organizer.log")

	res := runCLI(t, "", false, dir, "--log-file", logFile)
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	if !exists(logFile) || exists(filepath.Join(dir, "log")) {
		t.Error("the activity log must not be organized")
	}
}

func TestInvalidArguments(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown sort", []string{dir, "--sort", "size"}, "sort"},
		{"missing directory", []string{filepath.Join(dir, "nope")}, "does not exist"},
		{"bad undo policy", []string{dir, "--undo", "later"}, "undo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, "", false, tt.args...)
			if res.err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(res.err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", res.err, tt.want)
			}
		})
	}
}

func TestNoArguments(t *testing.T) {
	if res := runCLI(t, "", false); res.err == nil {
		t.Fatal("expected an argument error")
	}
}
