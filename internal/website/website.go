package website

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/coriolinus/aoctool/internal/config"
)

// DefaultBaseURL is the Advent of Code site root.
const DefaultBaseURL = "https://adventofcode.com"

const fetchTimeout = 5 * time.Second

// ErrNoSession indicates that no session key is configured; inputs cannot be
// downloaded without one.
var ErrNoSession = errors.New("no session key configured; run 'aoctool config set --session <key>'")

// StatusError indicates a non-success HTTP status from the website.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("requesting %s: unexpected status %d", e.URL, e.StatusCode)
}

// Client downloads puzzle inputs. Construct with NewClient.
type Client struct {
	client  *http.Client
	baseURL string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithBaseURL overrides the website root, for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// NewClient returns a Client with a short fixed timeout and no retries.
func NewClient(opts ...Option) *Client {
	c := &Client{
		client:  &http.Client{Timeout: fetchTimeout},
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URLForDay returns the puzzle page URL for a day.
func URLForDay(year, day int) string {
	return urlForDay(DefaultBaseURL, year, day)
}

func urlForDay(baseURL string, year, day int) string {
	return fmt.Sprintf("%s/%d/day/%d", baseURL, year, day)
}

// GetInput downloads the puzzle input for a day and caches it at the
// configured input location. When the cached file already exists this is a
// no-op, which keeps the post-clone workflow cheap.
func (c *Client) GetInput(ctx context.Context, cfg *config.Config, year, day int) error {
	inputPath := cfg.InputFor(year, day)
	if _, err := os.Stat(inputPath); err == nil {
		return nil
	}

	if cfg.Session == "" {
		return ErrNoSession
	}

	url := urlForDay(c.baseURL, year, day) + "/input"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating input request: %w", err)
	}
	req.AddCookie(&http.Cookie{Name: "session", Value: cfg.Session})

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("requesting input: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("downloading input: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(inputPath), 0o755); err != nil {
		return fmt.Errorf("creating input directory: %w", err)
	}
	if err := os.WriteFile(inputPath, body, 0o644); err != nil {
		return fmt.Errorf("writing input file: %w", err)
	}
	return nil
}
