package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// minDebounce is the shortest quiet period that avoids picking up files
// while they are still being written.
const minDebounce = 100 * time.Millisecond

// ValidationSeverity represents the severity of a validation issue.
type ValidationSeverity string

const (
	SeverityError   ValidationSeverity = "error"
	SeverityWarning ValidationSeverity = "warning"
)

// ConfigValidationError represents a single validation issue.
type ConfigValidationError struct {
	Type     ConfigErrorType
	Field    string // Setting with the issue (e.g., "directory")
	Message  string
	Severity ValidationSeverity
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	Errors   []ConfigValidationError
	Warnings []ConfigValidationError
	Valid    bool // True if no errors (warnings OK)
}

func (r *ValidationResult) add(issues []ConfigValidationError) {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			r.Errors = append(r.Errors, issue)
		} else {
			r.Warnings = append(r.Warnings, issue)
		}
	}
}

// ValidateConfig checks the configuration and returns all findings.
func ValidateConfig(cfg *Config) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ConfigValidationError{},
		Warnings: []ConfigValidationError{},
	}

	result.add(ValidateDirectory(cfg))
	result.add(ValidatePolicies(cfg))
	result.add(ValidateWatch(cfg))

	result.Valid = len(result.Errors) == 0
	return result
}

// ValidateDirectory checks that the target exists and is a directory.
func ValidateDirectory(cfg *Config) []ConfigValidationError {
	if strings.TrimSpace(cfg.Directory) == "" {
		return []ConfigValidationError{{
			Type:     MissingDirectory,
			Field:    KeyDirectory,
			Message:  "no directory given",
			Severity: SeverityError,
		}}
	}

	info, err := os.Stat(cfg.Directory)
	switch {
	case os.IsNotExist(err):
		return []ConfigValidationError{{
			Type:     InvalidDirectory,
			Field:    KeyDirectory,
			Message:  "directory does not exist: " + cfg.Directory,
			Severity: SeverityError,
		}}
	case os.IsPermission(err):
		return []ConfigValidationError{{
			Type:     InvalidDirectory,
			Field:    KeyDirectory,
			Message:  "directory is not accessible: " + cfg.Directory,
			Severity: SeverityError,
		}}
	case err != nil:
		return []ConfigValidationError{{
			Type:     InvalidDirectory,
			Field:    KeyDirectory,
			Message:  "error accessing directory: " + err.Error(),
			Severity: SeverityError,
		}}
	case !info.IsDir():
		return []ConfigValidationError{{
			Type:     InvalidDirectory,
			Field:    KeyDirectory,
			Message:  "path is not a directory: " + cfg.Directory,
			Severity: SeverityError,
		}}
	}
	return nil
}

// ValidatePolicies checks the sort mode and the undo policy.
func ValidatePolicies(cfg *Config) []ConfigValidationError {
	var issues []ConfigValidationError

	if !cfg.Mode.Valid() {
		issues = append(issues, ConfigValidationError{
			Type:     InvalidMode,
			Field:    KeySort,
			Message:  "invalid sort mode: \"" + string(cfg.Mode) + "\". Must be \"by-extension\" or \"by-date\"",
			Severity: SeverityError,
		})
	}

	if _, err := ParseUndoPolicy(string(cfg.UndoPolicy)); err != nil {
		issues = append(issues, ConfigValidationError{
			Type:     InvalidPolicy,
			Field:    KeyUndo,
			Message:  "invalid undo policy: \"" + string(cfg.UndoPolicy) + "\". Must be \"ask\", \"always\", or \"never\"",
			Severity: SeverityError,
		})
	}

	if cfg.DryRun && cfg.UndoPolicy == UndoAlways {
		issues = append(issues, ConfigValidationError{
			Type:     InvalidPolicy,
			Field:    KeyUndo,
			Message:  "undo has nothing to reverse in a dry run",
			Severity: SeverityWarning,
		})
	}

	return issues
}

// ValidateWatch checks the watch-mode settings.
func ValidateWatch(cfg *Config) []ConfigValidationError {
	var issues []ConfigValidationError

	if cfg.Watch.Debounce < 0 {
		issues = append(issues, ConfigValidationError{
			Type:     InvalidValue,
			Field:    KeyWatchDebounce,
			Message:  "debounce cannot be negative: " + cfg.Watch.Debounce.String(),
			Severity: SeverityError,
		})
	} else if cfg.Watch.Debounce > 0 && cfg.Watch.Debounce < minDebounce {
		issues = append(issues, ConfigValidationError{
			Type:     InvalidValue,
			Field:    KeyWatchDebounce,
			Message:  "debounce below " + minDebounce.String() + " may pick up files still being written",
			Severity: SeverityWarning,
		})
	}

	for _, pattern := range cfg.Watch.IgnorePatterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			issues = append(issues, ConfigValidationError{
				Type:     InvalidValue,
				Field:    KeyWatchIgnore,
				Message:  "malformed pattern \"" + pattern + "\": " + err.Error(),
				Severity: SeverityError,
			})
		}
	}

	return issues
}
