package scaffold

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/coriolinus/aoctool/internal/fsutil"
)

// DefaultBaseURL is where canonical day templates are served from.
const DefaultBaseURL = "https://raw.githubusercontent.com/coriolinus/aoctool/master/day-template"

const fetchTimeout = 5 * time.Second

// StatusError indicates a non-success HTTP status while fetching a template.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetching %s: unexpected status %d", e.URL, e.StatusCode)
}

// Fetcher downloads missing day templates. The zero value is not usable;
// construct with NewFetcher.
type Fetcher struct {
	client  *http.Client
	baseURL string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient overrides the HTTP client used for template downloads.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithBaseURL overrides the template source location.
func WithBaseURL(baseURL string) Option {
	return func(f *Fetcher) {
		f.baseURL = baseURL
	}
}

// NewFetcher returns a Fetcher with a short fixed timeout and no retries.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:  &http.Client{Timeout: fetchTimeout},
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// EnsureTemplates makes every file in TemplateFiles present under
// templateDir, fetching the ones that are missing. An existing local
// template is authoritative and is left alone. Templates fetched before a
// later failure stay on disk.
func (f *Fetcher) EnsureTemplates(ctx context.Context, templateDir string) error {
	for _, name := range TemplateFiles {
		path := filepath.Join(templateDir, filepath.FromSlash(name))
		if _, err := os.Stat(path); err == nil {
			continue
		}

		// Templates like src/lib.rs need their parent directory first.
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating template parent directory: %w", err)
		}

		body, err := f.fetch(ctx, name)
		if err != nil {
			return err
		}
		if err := fsutil.WriteFileNew(path, body, 0o644); err != nil {
			return fmt.Errorf("writing template %s: %w", name, err)
		}
	}
	return nil
}

func (f *Fetcher) fetch(ctx context.Context, name string) ([]byte, error) {
	url := f.baseURL + "/" + name

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating template request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting template %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("downloading template %s: %w", name, err)
	}
	return body, nil
}
