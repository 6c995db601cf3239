package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestConfirmUndo(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"short yes", "y\n", true},
		{"long yes", "yes\n", true},
		{"upper case", "YES\n", true},
		{"surrounding whitespace", "  y  \n", true},
		{"no", "n\n", false},
		{"empty line", "\n", false},
		{"anything else", "maybe\n", false},
		{"end of input", "", false},
		{"yes without newline", "y", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := New(strings.NewReader(tt.input), &out)

			got, err := p.ConfirmUndo(3)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ConfirmUndo(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestConfirmUndoShowsCount(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("n\n"), &out)

	if _, err := p.ConfirmUndo(1); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Undo 1 move?") {
		t.Errorf("unexpected prompt %q", out.String())
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestConfirmUndoReadError(t *testing.T) {
	p := New(failingReader{}, &bytes.Buffer{})

	ok, err := p.ConfirmUndo(2)
	if err == nil {
		t.Fatal("expected read error")
	}
	if ok {
		t.Error("a read error must never confirm")
	}
}

func TestIsInteractiveUnderTest(t *testing.T) {
	_ = IsInteractive()
}
