package actlog

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
)

// Capture collects activity lines in memory. Tests use it in place of the
// log file.
type Capture struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// NewCapture returns a logger backed by a fresh Capture.
func NewCapture() (*slog.Logger, *Capture) {
	c := &Capture{}
	return New(c), c
}

func (c *Capture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

// Lines returns every captured line without its trailing newline.
func (c *Capture) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	text := strings.TrimRight(c.buf.String(), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// Count returns how many captured lines contain substr.
func (c *Capture) Count(substr string) int {
	n := 0
	for _, line := range c.Lines() {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}
