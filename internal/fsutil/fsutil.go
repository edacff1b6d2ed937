package fsutil

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
)

// AppendLineIfAbsent appends line plus a trailing newline to the file at path
// unless an identical line is already present. The file is compared as raw
// bytes, line by line including the terminator, so it need not be valid UTF-8.
// A missing or unreadable file counts as "line not present" and is created on
// append. An existing final line without a terminator is given one before the
// append. Calling twice with the same line leaves exactly one occurrence.
func AppendLineIfAbsent(path string, line []byte) error {
	candidate := make([]byte, 0, len(line)+1)
	candidate = append(candidate, line...)
	candidate = append(candidate, '\n')

	found, unterminated := containsLine(path, candidate)
	if found {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s for append: %w", path, err)
	}
	defer f.Close()

	// A final line without its own terminator gets one first so the
	// appended line starts at a line boundary.
	if unterminated {
		if _, err := f.Write([]byte{'\n'}); err != nil {
			return fmt.Errorf("appending to %s: %w", path, err)
		}
	}
	if _, err := f.Write(candidate); err != nil {
		return fmt.Errorf("appending to %s: %w", path, err)
	}
	return nil
}

// containsLine reports whether the file holds a line byte-identical to
// candidate (terminator included), and whether the file's final line lacks a
// terminator. Read failures are treated as "no match": the append phase will
// surface any real problem with the path.
func containsLine(path string, candidate []byte) (found, unterminated bool) {
	f, err := os.Open(path)
	if err != nil {
		return false, false
	}
	defer f.Close()

	r := bufio.NewReader(f)
	for {
		current, err := r.ReadBytes('\n')
		if len(current) > 0 && bytes.Equal(current, candidate) {
			return true, false
		}
		if err == io.EOF {
			return false, len(current) > 0 && current[len(current)-1] != '\n'
		}
		if err != nil {
			return false, false
		}
	}
}

// WriteFileNew writes data to a file that must not exist yet. An existing
// file is left untouched and the returned error wraps fs.ErrExist.
func WriteFileNew(path string, data []byte, perm os.FileMode) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, perm)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
