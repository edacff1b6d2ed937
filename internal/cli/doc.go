// Package cli defines the Cobra command tree for aoctool. Each file in this
// package registers one top-level command (init, init-year, config, url,
// clear-templates, version) with the root command. Command implementations
// delegate to internal packages for the actual work and only handle flag
// parsing, defaulting, and output formatting.
package cli
