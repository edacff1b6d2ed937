package scaffold

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/coriolinus/aoctool/internal/fsutil"
)

// TemplateFiles is the day-template set, as slash-separated paths relative to
// both the template directory and the day directory.
var TemplateFiles = []string{"Cargo.toml", "src/lib.rs", "src/main.rs"}

// Data holds the template variables available to day templates. A template
// referencing anything else fails to render.
type Data struct {
	Year        int    // e.g. 2023
	Day         int    // e.g. 7
	PackageName string // e.g. "day07"
}

// Render materializes every template in TemplateFiles from templateDir into
// destDir. Destination files must not exist yet: an existing file fails the
// render (wrapping fs.ErrExist) and is left untouched. Files rendered before
// a later failure are not rolled back, so a failed render can leave a
// partially materialized day directory.
func Render(templateDir, destDir string, data *Data) error {
	for _, name := range TemplateFiles {
		text, err := os.ReadFile(filepath.Join(templateDir, filepath.FromSlash(name)))
		if err != nil {
			return fmt.Errorf("reading template %s: %w", name, err)
		}

		tmpl, err := template.New(name).Parse(string(text))
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return fmt.Errorf("rendering template %s: %w", name, err)
		}

		destPath := filepath.Join(destDir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
			return fmt.Errorf("creating destination directory: %w", err)
		}
		if err := fsutil.WriteFileNew(destPath, buf.Bytes(), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// Clear removes the template directory tree. Useful after the canonical
// templates have been updated upstream; the next init fetches fresh copies.
func Clear(templateDir string) error {
	if err := os.RemoveAll(templateDir); err != nil {
		return fmt.Errorf("clearing templates: %w", err)
	}
	return nil
}
