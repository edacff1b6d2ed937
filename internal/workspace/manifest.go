package workspace

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ManifestName is the manifest file name expected at the implementation
// directory root.
const ManifestName = "Cargo.toml"

// DefaultManifest is the stub written when initializing a fresh year.
const DefaultManifest = "[workspace]\nmembers = []\n"

// ErrMalformed indicates that a node on the workspace.members path exists but
// has the wrong shape, for example a workspace key that is not a table or a
// members key that is not an inline array.
var ErrMalformed = errors.New("manifest is malformed")

// ParseError indicates that the manifest content is not valid TOML.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing manifest %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DuplicateMemberError indicates that a member is already registered in the
// workspace. The manifest is left unmodified.
type DuplicateMemberError struct {
	Name string
}

func (e *DuplicateMemberError) Error() string {
	return fmt.Sprintf("member already exists in workspace: %s", e.Name)
}

// Document is a workspace manifest held as its original bytes. An unmodified
// Document serializes byte-identically to its source; AddMember splices into
// the members array and leaves every other byte in place.
//
// A Document is owned by a single edit operation. Concurrent edits against
// the same backing file are a caller error (single-writer assumption).
type Document struct {
	path string
	data []byte
}

// Load reads and parses the manifest at path. The returned error wraps
// fs.ErrNotExist when the file is missing and is a *ParseError when the
// content is not valid TOML.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	doc.path = path
	return doc, nil
}

// Parse validates data as TOML and wraps it in a Document. The Document has
// no backing path; Save is only available after Load.
func Parse(data []byte) (*Document, error) {
	var root map[string]interface{}
	if err := toml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return &Document{data: bytes.Clone(data)}, nil
}

// Bytes returns the current document content.
func (d *Document) Bytes() []byte {
	return bytes.Clone(d.data)
}

func (d *Document) String() string {
	return string(d.data)
}

// Members returns the string entries of workspace.members, in document order.
// Entries of other types are skipped.
func (d *Document) Members() []string {
	_, arr, err := d.workspaceNodes()
	if err != nil {
		return nil
	}
	var members []string
	for _, item := range arr {
		if s, ok := item.(string); ok {
			members = append(members, s)
		}
	}
	return members
}

// AddMember appends name to workspace.members, creating the [workspace]
// table and the members array as needed. It fails with *DuplicateMemberError
// when name is already present and with ErrMalformed when an existing node on
// the path has the wrong shape; in both cases the document is unchanged.
// Members keep insertion order; no sorting is applied.
func (d *Document) AddMember(name string) error {
	table, arr, err := d.workspaceNodes()
	if err != nil {
		return err
	}

	for _, item := range arr {
		if s, ok := item.(string); ok && s == name {
			return &DuplicateMemberError{Name: name}
		}
	}

	var data []byte
	if table == nil {
		data = appendWorkspaceSection(d.data, name)
	} else {
		data, err = spliceMember(d.data, name, hasMembersKey(table))
		if err != nil {
			return err
		}
	}

	// A splice that produces invalid TOML is a bug; catch it before the
	// result reaches the backing file.
	if err := toml.Unmarshal(data, &map[string]interface{}{}); err != nil {
		return fmt.Errorf("internal error: edited manifest is invalid: %w", err)
	}

	d.data = data
	return nil
}

// Save rewrites the backing file in full with the current document content.
// There is no partial-write recovery; a crash mid-write can corrupt the file.
func (d *Document) Save() error {
	if d.path == "" {
		return errors.New("document has no backing file")
	}
	if err := os.WriteFile(d.path, d.data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// workspaceNodes returns the workspace table and members array from the
// parsed document, nil for whichever does not exist. Wrong-shaped nodes
// yield ErrMalformed.
func (d *Document) workspaceNodes() (map[string]interface{}, []interface{}, error) {
	var root map[string]interface{}
	if err := toml.Unmarshal(d.data, &root); err != nil {
		return nil, nil, &ParseError{Path: d.path, Err: err}
	}

	raw, ok := root["workspace"]
	if !ok {
		return nil, nil, nil
	}
	table, ok := raw.(map[string]interface{})
	if !ok {
		return nil, nil, fmt.Errorf("workspace is not a table: %w", ErrMalformed)
	}

	rawMembers, ok := table["members"]
	if !ok {
		return table, nil, nil
	}
	arr, ok := rawMembers.([]interface{})
	if !ok {
		return nil, nil, fmt.Errorf("workspace.members is not an array: %w", ErrMalformed)
	}
	return table, arr, nil
}

func hasMembersKey(table map[string]interface{}) bool {
	_, ok := table["members"]
	return ok
}
