// Package scaffold manages the day-template set: a manifest stub and two
// source stubs that make up a fresh day's sub-crate. Missing templates are
// fetched from this repository's GitHub raw URL into the local template
// directory (local copies are user customizations and are never overwritten),
// then rendered with per-day substitutions into the day directory.
package scaffold
