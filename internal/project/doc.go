// Package project orchestrates the scaffolding operations: initializing a
// day (register the sub-crate in the workspace manifest, materialize the day
// templates, fetch the puzzle input) and initializing a year (reconcile the
// configured paths, lay down a fresh workspace with manifest and gitignore).
package project
