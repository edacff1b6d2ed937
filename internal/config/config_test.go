package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFrom_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), fileName))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Session != "" {
		t.Errorf("expected empty session, got %q", cfg.Session)
	}
	if len(cfg.Paths) != 0 {
		t.Errorf("expected no paths, got %v", cfg.Paths)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), fileName)

	cfg := &Config{
		Session: "deadbeef",
		Paths:   make(map[string]*ScopePaths),
		path:    path,
	}
	cfg.SetImplementation(2023, "/work/aoc2023")
	cfg.SetInputFiles(2023, "/work/aoc2023/inputs")

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if loaded.Session != "deadbeef" {
		t.Errorf("expected session deadbeef, got %q", loaded.Session)
	}
	if got := loaded.Implementation(2023); got != "/work/aoc2023" {
		t.Errorf("expected implementation /work/aoc2023, got %q", got)
	}
	if got := loaded.InputFiles(2023); got != "/work/aoc2023/inputs" {
		t.Errorf("expected input files /work/aoc2023/inputs, got %q", got)
	}
}

func TestLoadFrom_EnvSessionIsNotPersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), fileName)
	if err := os.WriteFile(path, []byte("session: from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("AOCTOOL_SESSION", "from-env")
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Session != "from-env" {
		t.Errorf("expected env override for the current process, got %q", cfg.Session)
	}

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	t.Setenv("AOCTOOL_SESSION", "")
	reloaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if reloaded.Session != "from-file" {
		t.Errorf("env override leaked into the config file: got %q", reloaded.Session)
	}
}

func TestSetSessionReplacesEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), fileName)

	t.Setenv("AOCTOOL_SESSION", "from-env")
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	cfg.SetSession("explicit")
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	t.Setenv("AOCTOOL_SESSION", "")
	reloaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if reloaded.Session != "explicit" {
		t.Errorf("expected the explicitly set session persisted, got %q", reloaded.Session)
	}
}

func TestLoadFrom_InvalidShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), fileName)
	content := "paths:\n  \"2023\":\n    bogus_key: /somewhere\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected an error for a config with unknown keys")
	}
	if !strings.Contains(err.Error(), "invalid") {
		t.Errorf("expected a validation error, got %v", err)
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{Paths: make(map[string]*ScopePaths)}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.Implementation(2023); got != cwd {
		t.Errorf("default implementation should be the working directory, got %q", got)
	}
	if got := cfg.InputFiles(2023); got != filepath.Join(cwd, "inputs") {
		t.Errorf("default input files should be inputs under the implementation, got %q", got)
	}
	if got := cfg.InputFor(2023, 7); got != filepath.Join(cwd, "inputs", "input-07.txt") {
		t.Errorf("unexpected input path %q", got)
	}
}

func TestInputFilesFollowsConfiguredImplementation(t *testing.T) {
	cfg := &Config{Paths: make(map[string]*ScopePaths)}
	cfg.SetImplementation(2023, "/work/aoc2023")

	if got := cfg.InputFiles(2023); got != "/work/aoc2023/inputs" {
		t.Errorf("expected inputs under the configured implementation, got %q", got)
	}
}

func TestClearPaths(t *testing.T) {
	cfg := &Config{Paths: make(map[string]*ScopePaths)}
	cfg.SetInputFiles(2023, "/somewhere/inputs")
	cfg.SetDayTemplates(2023, "/somewhere/templates")

	cfg.ClearInputFiles(2023)
	if p := cfg.scope(2023); p.InputFiles != "" {
		t.Errorf("input files not cleared: %q", p.InputFiles)
	}
	if p := cfg.scope(2023); p.DayTemplates != "/somewhere/templates" {
		t.Errorf("day templates should be untouched, got %q", p.DayTemplates)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name  string
		yaml  string
		valid bool
	}{
		{"empty", "", true},
		{"session only", "session: abc\n", true},
		{"full", "session: abc\npaths:\n  \"2023\":\n    implementation: /work\n", true},
		{"bare year key", "paths:\n  2023:\n    implementation: /work\n", true},
		{"unknown top-level key", "sessoin: abc\n", false},
		{"unknown path kind", "paths:\n  \"2023\":\n    template_dir: /x\n", false},
		{"non-year key", "paths:\n  latest:\n    implementation: /x\n", false},
		{"session not a string", "session: [1, 2]\n", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Validate([]byte(tc.yaml))
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if result.Valid != tc.valid {
				t.Errorf("Valid = %v, want %v (issues: %v)", result.Valid, tc.valid, result.Issues)
			}
		})
	}
}
