package workspace

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), ManifestName))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := writeManifest(t, "[workspace\nmembers = []")

	_, err := Load(path)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

func TestParse_RoundTripIsByteIdentical(t *testing.T) {
	content := "# top comment\n[workspace]\nmembers = [\"day01\"]  # inline comment\n\n[profile.release]\nlto = true\n"

	doc, err := Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.String() != content {
		t.Errorf("unmodified document must round-trip byte-identically:\n%q\nvs\n%q", doc.String(), content)
	}
}

func TestAddMember_EmptyArray(t *testing.T) {
	doc, err := Parse([]byte(DefaultManifest))
	if err != nil {
		t.Fatal(err)
	}

	if err := doc.AddMember("day07"); err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}

	want := "[workspace]\nmembers = [\"day07\"]\n"
	if doc.String() != want {
		t.Errorf("got:\n%q\nwant:\n%q", doc.String(), want)
	}
}

func TestAddMember_AppendsInOrder(t *testing.T) {
	doc, err := Parse([]byte("[workspace]\nmembers = [\"day01\", \"day02\"]\n"))
	if err != nil {
		t.Fatal(err)
	}

	if err := doc.AddMember("day03"); err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}

	want := "[workspace]\nmembers = [\"day01\", \"day02\", \"day03\"]\n"
	if doc.String() != want {
		t.Errorf("got:\n%q\nwant:\n%q", doc.String(), want)
	}
}

func TestAddMember_PreservesSurroundingFormatting(t *testing.T) {
	content := `# workspace for 2023

[workspace]   # the workspace table
members = [
    "day01",
]

[profile.release]
lto = true    # keep this comment
`
	doc, err := Parse([]byte(content))
	if err != nil {
		t.Fatal(err)
	}

	if err := doc.AddMember("day02"); err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}

	want := `# workspace for 2023

[workspace]   # the workspace table
members = [
    "day01", "day02",
]

[profile.release]
lto = true    # keep this comment
`
	if doc.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", doc.String(), want)
	}
}

func TestAddMember_CreatesWorkspaceSection(t *testing.T) {
	doc, err := Parse([]byte("[package]\nname = \"aoc\"\n"))
	if err != nil {
		t.Fatal(err)
	}

	if err := doc.AddMember("day01"); err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}

	want := "[package]\nname = \"aoc\"\n[workspace]\nmembers = [\"day01\"]\n"
	if doc.String() != want {
		t.Errorf("got:\n%q\nwant:\n%q", doc.String(), want)
	}
}

func TestAddMember_CreatesMembersKey(t *testing.T) {
	doc, err := Parse([]byte("[workspace]\nresolver = \"2\"\n\n[patch]\n"))
	if err != nil {
		t.Fatal(err)
	}

	if err := doc.AddMember("day01"); err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}

	want := "[workspace]\nresolver = \"2\"\nmembers = [\"day01\"]\n\n[patch]\n"
	if doc.String() != want {
		t.Errorf("got:\n%q\nwant:\n%q", doc.String(), want)
	}
}

func TestAddMember_CreatesMembersKeyWithoutTrailingNewline(t *testing.T) {
	doc, err := Parse([]byte("[workspace]\nresolver = \"2\""))
	if err != nil {
		t.Fatal(err)
	}

	if err := doc.AddMember("day07"); err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}

	want := "[workspace]\nresolver = \"2\"\nmembers = [\"day07\"]\n"
	if doc.String() != want {
		t.Errorf("got:\n%q\nwant:\n%q", doc.String(), want)
	}
}

func TestAddMember_EmptyDocument(t *testing.T) {
	doc, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := doc.AddMember("day01"); err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}

	want := "[workspace]\nmembers = [\"day01\"]\n"
	if doc.String() != want {
		t.Errorf("got:\n%q\nwant:\n%q", doc.String(), want)
	}
}

func TestAddMember_Duplicate(t *testing.T) {
	content := "[workspace]\nmembers = [\"day01\", \"day07\"]\n"
	path := writeManifest(t, content)

	doc, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	err = doc.AddMember("day07")
	var dup *DuplicateMemberError
	if !errors.As(err, &dup) {
		t.Fatalf("expected *DuplicateMemberError, got %v", err)
	}
	if dup.Name != "day07" {
		t.Errorf("expected duplicate name day07, got %s", dup.Name)
	}

	// Neither the document nor the backing file may change.
	if doc.String() != content {
		t.Errorf("document modified after duplicate add:\n%q", doc.String())
	}
	onDisk, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(onDisk) != content {
		t.Errorf("backing file modified after duplicate add:\n%q", onDisk)
	}
}

func TestAddMember_WorkspaceNotATable(t *testing.T) {
	doc, err := Parse([]byte("workspace = 3\n"))
	if err != nil {
		t.Fatal(err)
	}

	if err := doc.AddMember("day01"); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestAddMember_MembersNotAnArray(t *testing.T) {
	doc, err := Parse([]byte("[workspace]\nmembers = \"day01\"\n"))
	if err != nil {
		t.Fatal(err)
	}

	if err := doc.AddMember("day02"); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestAddMember_SaveRewritesFile(t *testing.T) {
	path := writeManifest(t, DefaultManifest)

	doc, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := doc.AddMember("day07"); err != nil {
		t.Fatal(err)
	}
	if err := doc.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	members := reloaded.Members()
	if len(members) != 1 || members[0] != "day07" {
		t.Errorf("expected members [day07], got %v", members)
	}
}

func TestMembers(t *testing.T) {
	doc, err := Parse([]byte("[workspace]\nmembers = [\"day01\", \"day02\"]\n"))
	if err != nil {
		t.Fatal(err)
	}

	members := doc.Members()
	if len(members) != 2 || members[0] != "day01" || members[1] != "day02" {
		t.Errorf("expected [day01 day02], got %v", members)
	}
}

func TestMembers_NoWorkspace(t *testing.T) {
	doc, err := Parse([]byte("[package]\nname = \"x\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if members := doc.Members(); members != nil {
		t.Errorf("expected nil members, got %v", members)
	}
}
