// Package config turns flags, environment variables and an optional config
// file into the validated settings of a folderorg run.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"folderorg/internal/actlog"
	"folderorg/internal/classifier"
	"folderorg/internal/watcher"
)

// ConfigErrorType represents the type of configuration error.
type ConfigErrorType string

const (
	InvalidMode       ConfigErrorType = "INVALID_MODE"
	MissingDirectory  ConfigErrorType = "MISSING_DIRECTORY"
	InvalidDirectory  ConfigErrorType = "INVALID_DIRECTORY"
	InvalidPolicy     ConfigErrorType = "INVALID_POLICY"
	InvalidValue      ConfigErrorType = "INVALID_VALUE"
	InvalidConfigFile ConfigErrorType = "INVALID_CONFIG_FILE"
)

// ConfigError represents an error in the settings of a run.
type ConfigError struct {
	Type    ConfigErrorType
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	switch e.Type {
	case MissingDirectory:
		return "no directory given to organize"
	case InvalidConfigFile:
		return fmt.Sprintf("invalid configuration file: %s", e.Message)
	default:
		if e.Field != "" {
			return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
		}
		return fmt.Sprintf("configuration error: %s", e.Message)
	}
}

// Keys understood in config files and, upper-cased with a FOLDERORG_ prefix,
// in the environment.
const (
	KeyDirectory     = "directory"
	KeySort          = "sort"
	KeyDryRun        = "dry-run"
	KeyLogFile       = "log-file"
	KeyUndo          = "undo"
	KeyVerbose       = "verbose"
	KeyWatchDebounce = "watch.debounce"
	KeyWatchIgnore   = "watch.ignore"

	EnvPrefix  = "FOLDERORG"
	ConfigName = ".folderorg"
)

// UndoPolicy decides whether the undo offer is made after a run.
type UndoPolicy string

const (
	UndoAsk    UndoPolicy = "ask"
	UndoAlways UndoPolicy = "always"
	UndoNever  UndoPolicy = "never"
)

// ParseUndoPolicy validates an undo policy name.
func ParseUndoPolicy(s string) (UndoPolicy, error) {
	switch p := UndoPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case UndoAsk, UndoAlways, UndoNever:
		return p, nil
	default:
		return "", fmt.Errorf("unknown undo policy %q (want ask, always or never)", s)
	}
}

// Resolve downgrades "ask" to "never" when nobody can answer the prompt.
func (p UndoPolicy) Resolve(interactive bool) UndoPolicy {
	if p == UndoAsk && !interactive {
		return UndoNever
	}
	return p
}

// Config holds all settings of one run.
type Config struct {
	Directory  string
	Mode       classifier.Mode
	DryRun     bool
	LogFile    string
	UndoPolicy UndoPolicy
	Verbose    bool
	Watch      watcher.WatchConfig
}

// New returns a viper instance with folderorg's defaults and environment
// binding. Flags are bound by the caller.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	wd := watcher.DefaultWatchConfig()
	v.SetDefault(KeySort, "type")
	v.SetDefault(KeyDryRun, false)
	v.SetDefault(KeyLogFile, actlog.DefaultFile)
	v.SetDefault(KeyUndo, string(UndoAsk))
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyWatchDebounce, wd.Debounce)
	v.SetDefault(KeyWatchIgnore, wd.IgnorePatterns)
}

// ReadFile loads cfgFile, or searches $HOME and the working directory for
// .folderorg.yaml when cfgFile is empty. A missing default file is not an
// error. The path actually used is returned.
func ReadFile(v *viper.Viper, cfgFile string) (string, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(ConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", &ConfigError{Type: InvalidConfigFile, Message: err.Error()}
	}
	return v.ConfigFileUsed(), nil
}

// FromViper builds a Config from v. A non-empty directory argument overrides
// the "directory" key. The result is validated.
func FromViper(v *viper.Viper, directory string) (*Config, error) {
	if directory == "" {
		directory = v.GetString(KeyDirectory)
	}

	mode, err := classifier.ParseMode(v.GetString(KeySort))
	if err != nil {
		return nil, &ConfigError{Type: InvalidMode, Field: KeySort, Message: err.Error()}
	}
	policy, err := ParseUndoPolicy(v.GetString(KeyUndo))
	if err != nil {
		return nil, &ConfigError{Type: InvalidPolicy, Field: KeyUndo, Message: err.Error()}
	}

	cfg := &Config{
		Directory:  directory,
		Mode:       mode,
		DryRun:     v.GetBool(KeyDryRun),
		LogFile:    v.GetString(KeyLogFile),
		UndoPolicy: policy,
		Verbose:    v.GetBool(KeyVerbose),
		Watch: watcher.WatchConfig{
			Debounce:       v.GetDuration(KeyWatchDebounce),
			IgnorePatterns: v.GetStringSlice(KeyWatchIgnore),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Directory = filepath.Clean(cfg.Directory)
	return cfg, nil
}

// Validate returns the first error ValidateConfig finds, as a ConfigError.
func (c *Config) Validate() error {
	result := ValidateConfig(c)
	if result.Valid {
		return nil
	}
	first := result.Errors[0]
	return &ConfigError{Type: first.Type, Field: first.Field, Message: first.Message}
}

// LogPath returns the absolute path of the activity log.
func (c *Config) LogPath() string {
	if c.LogFile == "" {
		return ""
	}
	if abs, err := filepath.Abs(c.LogFile); err == nil {
		return abs
	}
	return c.LogFile
}
