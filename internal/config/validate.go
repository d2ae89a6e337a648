package config

import (
	"path/filepath"
	"strings"

	"github.com/thoreinstein/tmplorg/internal/errors"
	"github.com/thoreinstein/tmplorg/internal/registry"
)

// Validation errors for configuration fields.
var (
	// ErrMissingPath indicates a required path field is empty.
	ErrMissingPath = errors.New("path is required")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	// Root may be empty (discovered), but must be well-formed if set.
	if cfg.Root != "" {
		if err := validatePath(cfg.Root); err != nil {
			errs = append(errs, &PathError{Field: KeyRoot, Path: cfg.Root, Err: err})
		}
	}

	for _, f := range []struct {
		key  string
		path string
	}{
		{KeyIndex, cfg.Index},
		{KeyStagingDir, cfg.StagingDir},
		{KeyResourcesDir, cfg.ResourcesDir},
		{KeyTemplatesDir, cfg.TemplatesDir},
		{KeyRegistryFile, cfg.RegistryFile},
	} {
		if f.path == "" {
			errs = append(errs, &PathError{Field: f.key, Path: f.path, Err: ErrMissingPath})
			continue
		}
		if err := validatePath(f.path); err != nil {
			errs = append(errs, &PathError{Field: f.key, Path: f.path, Err: err})
		}
	}

	if _, err := registry.ParseFormat(cfg.RegistryFormat); err != nil {
		errs = append(errs, &FormatError{Format: cfg.RegistryFormat, Err: err})
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Check for null bytes which are never valid in paths
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	// Clean the path and check it's not empty after cleaning
	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// FormatError represents an unsupported registry format.
type FormatError struct {
	Format string
	Err    error
}

func (e *FormatError) Error() string {
	return "registry_format: " + e.Err.Error()
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	if e.Path == "" {
		return e.Field + ": " + e.Err.Error()
	}
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}
