package watcher

import "testing"

func TestFileFilter_DefaultPatterns(t *testing.T) {
	f := NewFileFilter(nil)

	tests := []struct {
		path   string
		ignore bool
	}{
		{"/inbox/movie.mkv.part", true},
		{"/inbox/setup.exe.crdownload", true},
		{"/inbox/notes.tmp", true},
		{"/inbox/.~lock.report.odt#", true},
		{"/inbox/report.pdf", false},
		{"/inbox/c", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := f.ShouldIgnore(tt.path); got != tt.ignore {
				t.Errorf("ShouldIgnore(%q) = %v, want %v", tt.path, got, tt.ignore)
			}
		})
	}
}

func TestFileFilter_SuffixPattern(t *testing.T) {
	f := NewFileFilter([]string{".LOG"})

	if !f.ShouldIgnore("/inbox/file_organizer.log") {
		t.Error("suffix pattern should match case-insensitively")
	}
	if f.ShouldIgnore("/inbox/a.txt") {
		t.Error("unrelated file should not be ignored")
	}
}

func TestFileFilter_PatternsCopy(t *testing.T) {
	f := NewFileFilter([]string{"*.tmp"})
	p := f.Patterns()
	p[0] = "*"
	if f.ShouldIgnore("/inbox/a.txt") {
		t.Error("mutating Patterns() result must not change the filter")
	}
}
