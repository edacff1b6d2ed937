// Package workspace edits the Cargo.toml workspace manifest at the root of a
// year's implementation directory. Edits are byte-range splices into the
// original document rather than a parse/re-serialize round trip, so the
// formatting, comments, and key ordering of everything outside the
// workspace.members array survive an edit untouched.
package workspace
