package workspace

import (
	"bytes"
	"fmt"
	"strings"
)

// appendWorkspaceSection adds a [workspace] table with a single-member array
// at the end of the document.
func appendWorkspaceSection(data []byte, name string) []byte {
	var buf bytes.Buffer
	buf.Write(data)
	if len(data) > 0 && !bytes.HasSuffix(data, []byte("\n")) {
		buf.WriteByte('\n')
	}
	fmt.Fprintf(&buf, "[workspace]\nmembers = [%q]\n", name)
	return buf.Bytes()
}

// spliceMember inserts name into the members array of the [workspace]
// section, touching no other bytes. When the section has no members key yet,
// a fresh key is inserted after the section's last content line.
func spliceMember(data []byte, name string, membersExists bool) ([]byte, error) {
	sec, ok := findWorkspaceSection(data)
	if !ok {
		// The parser saw a workspace table but there is no [workspace]
		// header to edit: dotted or inline forms are out of scope.
		return nil, fmt.Errorf("workspace table has no [workspace] header: %w", ErrMalformed)
	}

	if !membersExists {
		insertion := fmt.Sprintf("members = [%q]\n", name)
		// The insertion point may sit at the end of a final line that has
		// no terminator; the new key still has to start on its own line.
		if sec.insertLineAt > 0 && data[sec.insertLineAt-1] != '\n' {
			insertion = "\n" + insertion
		}
		return insertAt(data, sec.insertLineAt, []byte(insertion)), nil
	}

	openIdx, ok := findMembersArray(data, sec)
	if !ok {
		// members exists per the parser but not as an inline array
		// assignment inside the section (e.g. [[workspace.members]]).
		return nil, fmt.Errorf("workspace.members is not an inline array: %w", ErrMalformed)
	}

	lastSig, _, err := scanArray(data, openIdx)
	if err != nil {
		return nil, err
	}

	if lastSig < 0 {
		// Empty array: place the first value right after the bracket.
		return insertAt(data, openIdx+1, []byte(fmt.Sprintf("%q", name))), nil
	}
	return insertAt(data, lastSig+1, []byte(fmt.Sprintf(", %q", name))), nil
}

func insertAt(data []byte, pos int, insertion []byte) []byte {
	out := make([]byte, 0, len(data)+len(insertion))
	out = append(out, data[:pos]...)
	out = append(out, insertion...)
	out = append(out, data[pos:]...)
	return out
}

// workspaceSection describes the byte range of the [workspace] table.
type workspaceSection struct {
	bodyStart    int // offset just past the header line
	bodyEnd      int // offset of the next table header, or len(data)
	insertLineAt int // offset at which a new key line keeps the table tidy
}

// findWorkspaceSection locates the [workspace] header line and the extent of
// its table body. A new-key insertion point is tracked just past the last
// non-blank line so trailing blank lines between sections stay where they are.
func findWorkspaceSection(data []byte) (workspaceSection, bool) {
	var sec workspaceSection
	inSection := false
	found := false

	for offset := 0; offset < len(data); {
		lineEnd := bytes.IndexByte(data[offset:], '\n')
		next := len(data)
		if lineEnd >= 0 {
			next = offset + lineEnd + 1
		}
		line := data[offset:next]
		trimmed := strings.TrimSpace(string(line))

		if inSection {
			if strings.HasPrefix(trimmed, "[") {
				sec.bodyEnd = offset
				return sec, true
			}
			if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
				sec.insertLineAt = next
			}
		} else if isWorkspaceHeader(trimmed) {
			inSection = true
			found = true
			sec.bodyStart = next
			sec.insertLineAt = next
		}

		if next == len(data) {
			break
		}
		offset = next
	}

	if found {
		sec.bodyEnd = len(data)
		return sec, true
	}
	return workspaceSection{}, false
}

func isWorkspaceHeader(trimmed string) bool {
	if !strings.HasPrefix(trimmed, "[workspace]") {
		return false
	}
	rest := strings.TrimSpace(trimmed[len("[workspace]"):])
	return rest == "" || strings.HasPrefix(rest, "#")
}

// findMembersArray locates the opening bracket of the members array
// assignment within the section body.
func findMembersArray(data []byte, sec workspaceSection) (int, bool) {
	offset := sec.bodyStart
	for offset < sec.bodyEnd {
		lineEnd := bytes.IndexByte(data[offset:sec.bodyEnd], '\n')
		next := sec.bodyEnd
		if lineEnd >= 0 {
			next = offset + lineEnd + 1
		}
		line := string(data[offset:next])

		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "members") {
			rest := strings.TrimLeft(trimmed[len("members"):], " \t")
			if strings.HasPrefix(rest, "=") {
				value := strings.TrimLeft(rest[1:], " \t")
				if strings.HasPrefix(value, "[") {
					// value is a left-trimmed suffix of the line, so the
					// bracket sits len(value) bytes before the line end.
					return next - len(value), true
				}
				return 0, false
			}
		}
		offset = next
	}
	return 0, false
}

// scanArray walks an inline TOML array starting at the opening bracket,
// honoring strings and comments, and returns the offset of the last
// significant value byte (-1 when the array is empty) and the offset of the
// matching closing bracket.
func scanArray(data []byte, openIdx int) (lastSig, closeIdx int, err error) {
	lastSig = -1
	depth := 0
	inBasic := false
	inLiteral := false
	inComment := false
	escaped := false

	for i := openIdx; i < len(data); i++ {
		c := data[i]

		switch {
		case inComment:
			if c == '\n' {
				inComment = false
			}
		case inBasic:
			lastSig = i
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inBasic = false
			}
		case inLiteral:
			lastSig = i
			if c == '\'' {
				inLiteral = false
			}
		default:
			switch c {
			case '"':
				inBasic = true
				lastSig = i
			case '\'':
				inLiteral = true
				lastSig = i
			case '#':
				inComment = true
			case '[':
				depth++
				if depth > 1 {
					lastSig = i
				}
			case ']':
				depth--
				if depth == 0 {
					return lastSig, i, nil
				}
				lastSig = i
			case ' ', '\t', '\r', '\n', ',':
				// insignificant between values
			default:
				lastSig = i
			}
		}
	}
	return -1, -1, fmt.Errorf("unterminated members array: %w", ErrMalformed)
}
