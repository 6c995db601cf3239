// Command folderorg sorts the files of a directory into subdirectories by
// extension or creation date, and can undo the run it just made.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand(newCommandContext(os.Stdin, os.Stdout, os.Stderr))
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
