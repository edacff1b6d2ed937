package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// PathOptions carries the directory paths requested on the command line.
// Empty fields were not supplied.
type PathOptions struct {
	InputFiles     string
	Implementation string
	DayTemplates   string
}

// ConflictError indicates that a path requested on the command line
// contradicts the one already persisted for the same year. The persisted
// value is never silently overwritten; clear it explicitly first.
type ConflictError struct {
	Desired    string
	Configured string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("CLI requested %q but config file specifies %q", e.Desired, e.Configured)
}

// ReconcilePaths merges the requested paths for a year into the persisted
// configuration, independently per path kind:
//
//   - nothing requested: no action;
//   - requested, nothing persisted: the directory is created if absent,
//     canonicalized, and persisted;
//   - requested and persisted agree (after absolutization): no action;
//   - requested and persisted disagree: *ConflictError, state untouched.
//
// The caller is responsible for saving the configuration afterwards.
func (c *Config) ReconcilePaths(year int, opts PathOptions) error {
	paths := c.ensureScope(year)

	if err := reconcilePath(opts.InputFiles, &paths.InputFiles); err != nil {
		return fmt.Errorf("input files: %w", err)
	}
	if err := reconcilePath(opts.Implementation, &paths.Implementation); err != nil {
		return fmt.Errorf("implementation: %w", err)
	}
	if err := reconcilePath(opts.DayTemplates, &paths.DayTemplates); err != nil {
		return fmt.Errorf("day templates: %w", err)
	}
	return nil
}

func reconcilePath(desired string, configured *string) error {
	if desired == "" {
		return nil
	}

	if *configured == "" {
		if err := os.MkdirAll(desired, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", desired, err)
		}
		canonical, err := canonicalize(desired)
		if err != nil {
			return err
		}
		*configured = canonical
		return nil
	}

	// Comparison happens on absolutized paths, which do not need to exist.
	// Canonicalization (symlink resolution) is reserved for freshly accepted
	// paths above.
	desiredAbs, err := filepath.Abs(desired)
	if err != nil {
		return fmt.Errorf("absolutizing %s: %w", desired, err)
	}
	configuredAbs, err := filepath.Abs(*configured)
	if err != nil {
		return fmt.Errorf("absolutizing %s: %w", *configured, err)
	}
	if desiredAbs != configuredAbs {
		return &ConflictError{Desired: desired, Configured: *configured}
	}
	return nil
}

// canonicalize resolves the path to an absolute, symlink-free form. The path
// must exist.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("absolutizing %s: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("canonicalizing %s: %w", path, err)
	}
	return resolved, nil
}
