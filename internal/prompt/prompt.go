// Package prompt asks the single yes/no question folderorg puts to the user:
// whether to undo the run that just finished.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// IsInteractive reports whether stdin is a terminal. Piped or redirected
// input is never prompted.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Prompter reads answers from reader and writes questions to writer.
type Prompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// New creates a Prompter. Use os.Stdin and os.Stdout for normal operation,
// or buffers for testing.
func New(reader io.Reader, writer io.Writer) *Prompter {
	return &Prompter{
		reader: bufio.NewReader(reader),
		writer: writer,
	}
}

// ConfirmUndo asks whether to undo the given number of moves. Only "y" or "yes", in any case,
// confirms; anything else, including end of input, declines.
func (p *Prompter) ConfirmUndo(moves int) (bool, error) {
	noun := "moves"
	if moves == 1 {
		noun = "move"
	}
	fmt.Fprintf(p.writer, "\nUndo %d %s? [y/N]: ", moves, noun)

	line, err := p.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("error reading input: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
