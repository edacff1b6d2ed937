package project

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/coriolinus/aoctool/internal/config"
	"github.com/coriolinus/aoctool/internal/fsutil"
	"github.com/coriolinus/aoctool/internal/scaffold"
	"github.com/coriolinus/aoctool/internal/website"
	"github.com/coriolinus/aoctool/internal/workspace"
)

// targetIgnoreLine is the ignore entry written into a fresh workspace.
const targetIgnoreLine = "/target/"

// Initializer runs the scaffolding operations against a loaded
// configuration. All operations are synchronous and assume a single writer
// per implementation directory; no locking is provided.
type Initializer struct {
	cfg     *config.Config
	fetcher *scaffold.Fetcher
	site    *website.Client
}

// Option configures an Initializer.
type Option func(*Initializer)

// WithFetcher overrides the template fetcher.
func WithFetcher(f *scaffold.Fetcher) Option {
	return func(i *Initializer) {
		i.fetcher = f
	}
}

// WithWebsite overrides the website client.
func WithWebsite(c *website.Client) Option {
	return func(i *Initializer) {
		i.site = c
	}
}

// New returns an Initializer over cfg.
func New(cfg *config.Config, opts ...Option) *Initializer {
	i := &Initializer{
		cfg:     cfg,
		fetcher: scaffold.NewFetcher(),
		site:    website.NewClient(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// DayName renders a day's member name, e.g. day 7 becomes "day07".
func DayName(day int) string {
	return fmt.Sprintf("day%02d", day)
}

// Initialize scaffolds one day: it registers a dayNN sub-crate in the
// workspace manifest, renders the day templates into the new directory, and
// downloads the puzzle input. Crate creation and input download can be
// skipped independently; skipping both is a no-op.
//
// Side effects are not transactional: directories, manifest registration,
// and rendered files created before a failure stay in place. Re-running
// after a partial failure reports DuplicateMember for the manifest step,
// which then needs manual correction.
func (i *Initializer) Initialize(ctx context.Context, year, day int, skipCreateCrate, skipGetInput bool) error {
	implDir := i.cfg.Implementation(year)
	manifestPath := filepath.Join(implDir, workspace.ManifestName)

	manifest, err := workspace.Load(manifestPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("no %s found in %s; check the implementation path or run 'aoctool init-year' first: %w",
				workspace.ManifestName, implDir, err)
		}
		return err
	}

	if !skipCreateCrate {
		dayName := DayName(day)
		dayDir := filepath.Join(implDir, dayName)
		if err := os.MkdirAll(filepath.Join(dayDir, "src"), 0o755); err != nil {
			return fmt.Errorf("creating day directory: %w", err)
		}

		if err := manifest.AddMember(dayName); err != nil {
			return err
		}
		if err := manifest.Save(); err != nil {
			return err
		}

		templateDir := i.cfg.DayTemplates(year)
		if err := i.fetcher.EnsureTemplates(ctx, templateDir); err != nil {
			return err
		}
		data := &scaffold.Data{Year: year, Day: day, PackageName: dayName}
		if err := scaffold.Render(templateDir, dayDir, data); err != nil {
			return err
		}
	}

	if !skipGetInput {
		if err := i.site.GetInput(ctx, i.cfg, year, day); err != nil {
			return err
		}
	}

	return nil
}

// InitializeYear prepares a year's workspace: reconciles the requested paths
// into the configuration, creates a fresh workspace (gitignore plus
// empty-members manifest) when the implementation directory is missing or
// empty, and makes sure the input directory is ignored when it lives inside
// the implementation directory. The caller saves the configuration.
func (i *Initializer) InitializeYear(year int, opts config.PathOptions) error {
	if err := i.cfg.ReconcilePaths(year, opts); err != nil {
		return err
	}

	implDir := i.cfg.Implementation(year)
	gitignorePath := filepath.Join(implDir, ".gitignore")

	if isMissingOrEmptyDir(implDir) {
		if err := os.MkdirAll(implDir, 0o755); err != nil {
			return fmt.Errorf("creating implementation directory: %w", err)
		}
		if err := fsutil.AppendLineIfAbsent(gitignorePath, []byte(targetIgnoreLine)); err != nil {
			return err
		}
		// A manifest that is somehow already there wins.
		err := fsutil.WriteFileNew(filepath.Join(implDir, workspace.ManifestName), []byte(workspace.DefaultManifest), 0o644)
		if err != nil && !errors.Is(err, fs.ErrExist) {
			return err
		}
	}

	rel, ok := inputsRelativeToImplementation(implDir, i.cfg.InputFiles(year))
	if ok {
		// The trailing separator scopes the ignore rule to directories.
		if err := fsutil.AppendLineIfAbsent(gitignorePath, []byte(rel+"/")); err != nil {
			return err
		}
	}

	return nil
}

// ClearTemplates removes the year's local template directory so the next
// init fetches fresh copies.
func (i *Initializer) ClearTemplates(year int) error {
	return scaffold.Clear(i.cfg.DayTemplates(year))
}

// isMissingOrEmptyDir reports whether a fresh workspace should be laid down
// at path: it does not exist, or it is a directory with no entries.
func isMissingOrEmptyDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return true
	}
	if !info.IsDir() {
		return false
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return false
	}
	return len(entries) == 0
}

// inputsRelativeToImplementation returns the input directory's slash-form
// path relative to the implementation directory, and whether it is a strict
// subdirectory.
func inputsRelativeToImplementation(implDir, inputDir string) (string, bool) {
	implAbs, err := filepath.Abs(implDir)
	if err != nil {
		return "", false
	}
	inputAbs, err := filepath.Abs(inputDir)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(implAbs, inputAbs)
	if err != nil {
		return "", false
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
