// Package fsutil provides the idempotent file-write primitives shared by the
// scaffolding flow: appending a line to a file only when it is not already
// present (gitignore upkeep) and creating a file only when it does not exist
// yet (template fetch, template render, default manifest stub).
package fsutil
