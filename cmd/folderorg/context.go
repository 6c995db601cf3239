package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/viper"

	"folderorg/internal/actlog"
	"folderorg/internal/config"
	"folderorg/internal/output"
	"folderorg/internal/prompt"
)

// commandContext carries what every command shares: the settings store and
// the process streams.
type commandContext struct {
	v       *viper.Viper
	cfgFile string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	isTTY  bool

	interactive func() bool
}

func newCommandContext(stdin io.Reader, stdout, stderr io.Writer) *commandContext {
	return &commandContext{
		v:           config.New(),
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
		isTTY:       output.DefaultConfig().IsTTY,
		interactive: prompt.IsInteractive,
	}
}

// loadConfig reads the config file, if any, and builds the validated
// settings for directory.
func (c *commandContext) loadConfig(directory string) (*config.Config, error) {
	used, err := config.ReadFile(c.v, c.cfgFile)
	if err != nil {
		return nil, err
	}
	cfg, err := config.FromViper(c.v, directory)
	if err != nil {
		return nil, err
	}
	if used != "" && cfg.Verbose {
		fmt.Fprintf(c.stderr, "Using config file: %s\n", used)
	}
	for _, w := range config.ValidateConfig(cfg).Warnings {
		fmt.Fprintf(c.stderr, "Warning: %s: %s\n", w.Field, w.Message)
	}
	return cfg, nil
}

// openLog opens the activity log in append mode. The returned func closes it.
func (c *commandContext) openLog(cfg *config.Config) (*slog.Logger, func(), error) {
	f, err := actlog.Open(cfg.LogPath())
	if err != nil {
		return nil, nil, err
	}
	return actlog.New(f), func() { f.Close() }, nil
}

func (c *commandContext) output(cfg *config.Config) *output.Output {
	return output.New(output.Config{
		Verbose:   cfg.Verbose,
		Writer:    c.stdout,
		ErrWriter: c.stderr,
		IsTTY:     c.isTTY,
	})
}
