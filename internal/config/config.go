package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

const (
	dirName  = "aoctool"
	fileName = "config.yaml"
	fileType = "yaml"

	envPrefix = "AOCTOOL"
)

// Dir returns the aoctool config directory. The AOCTOOL_CONFIG_DIR
// environment variable overrides the platform default.
func Dir() string {
	if v := os.Getenv(envPrefix + "_CONFIG_DIR"); v != "" {
		return v
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "."+dirName)
	}
	return filepath.Join(base, dirName)
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName)
}

// ScopePaths holds the configured directories for one year. Empty string
// means "not configured"; accessors on Config apply the defaults.
type ScopePaths struct {
	InputFiles     string `mapstructure:"input_files" yaml:"input_files,omitempty"`
	Implementation string `mapstructure:"implementation" yaml:"implementation,omitempty"`
	DayTemplates   string `mapstructure:"day_templates" yaml:"day_templates,omitempty"`
}

// Config is the persisted aoctool configuration. Paths is keyed by the year
// rendered as a string, which keeps the on-disk YAML and the viper key space
// aligned; use the year-typed accessors rather than the map directly.
type Config struct {
	Session string                 `mapstructure:"session" yaml:"session,omitempty"`
	Paths   map[string]*ScopePaths `mapstructure:"paths" yaml:"paths,omitempty"`

	path string

	// An AOCTOOL_SESSION override is process-local: Save persists the
	// file's own session value, not the environment's.
	sessionFromEnv bool
	fileSession    string
}

// Load reads the configuration from the default location. A missing file
// yields the zero configuration; this single policy applies to every command
// family. Unparseable or schema-invalid content is an error.
//
// The AOCTOOL_SESSION environment variable overrides the session key for the
// current process without being written back on Save.
func Load() (*Config, error) {
	return LoadFrom(FilePath())
}

// LoadFrom reads the configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{
		Paths: make(map[string]*ScopePaths),
		path:  path,
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)

	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg.applySessionEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("config %s is invalid: %s", path, result.Issues[0])
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Paths == nil {
		cfg.Paths = make(map[string]*ScopePaths)
	}
	cfg.path = path
	cfg.applySessionEnv()
	return cfg, nil
}

// applySessionEnv remembers the file's own session value and overlays an
// AOCTOOL_SESSION override for the current process.
func (c *Config) applySessionEnv() {
	c.fileSession = c.Session
	if env := os.Getenv(envPrefix + "_SESSION"); env != "" {
		c.Session = env
		c.sessionFromEnv = true
	}
}

// SetSession records a session key for persistence, replacing any
// environment-provided override.
func (c *Config) SetSession(session string) {
	c.Session = session
	c.fileSession = session
	c.sessionFromEnv = false
}

// Save writes the full configuration back to its backing file, creating the
// config directory as needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	session := c.Session
	if c.sessionFromEnv {
		session = c.fileSession
	}

	v := viper.New()
	v.SetConfigType(fileType)
	v.Set("session", session)
	v.Set("paths", c.Paths)

	if err := v.WriteConfigAs(c.path); err != nil {
		return fmt.Errorf("writing config %s: %w", c.path, err)
	}
	return nil
}

func yearKey(year int) string {
	return strconv.Itoa(year)
}

func (c *Config) scope(year int) *ScopePaths {
	return c.Paths[yearKey(year)]
}

func (c *Config) ensureScope(year int) *ScopePaths {
	key := yearKey(year)
	if c.Paths == nil {
		c.Paths = make(map[string]*ScopePaths)
	}
	if c.Paths[key] == nil {
		c.Paths[key] = &ScopePaths{}
	}
	return c.Paths[key]
}

// Implementation returns the year's implementation directory, defaulting to
// the current working directory.
func (c *Config) Implementation(year int) string {
	if p := c.scope(year); p != nil && p.Implementation != "" {
		return p.Implementation
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

// InputFiles returns the year's puzzle input directory, defaulting to
// "inputs" under the implementation directory.
func (c *Config) InputFiles(year int) string {
	if p := c.scope(year); p != nil && p.InputFiles != "" {
		return p.InputFiles
	}
	return filepath.Join(c.Implementation(year), "inputs")
}

// DayTemplates returns the year's day-template directory, defaulting to a
// per-year directory under the config directory.
func (c *Config) DayTemplates(year int) string {
	if p := c.scope(year); p != nil && p.DayTemplates != "" {
		return p.DayTemplates
	}
	return filepath.Join(Dir(), "day-templates", yearKey(year))
}

// InputFor returns the cached input file path for a day.
func (c *Config) InputFor(year, day int) string {
	return filepath.Join(c.InputFiles(year), fmt.Sprintf("input-%02d.txt", day))
}

// SetInputFiles records the input-files directory for a year.
func (c *Config) SetInputFiles(year int, path string) {
	c.ensureScope(year).InputFiles = path
}

// SetImplementation records the implementation directory for a year.
func (c *Config) SetImplementation(year int, path string) {
	c.ensureScope(year).Implementation = path
}

// SetDayTemplates records the day-template directory for a year.
func (c *Config) SetDayTemplates(year int, path string) {
	c.ensureScope(year).DayTemplates = path
}

// ClearInputFiles forgets the configured input-files directory for a year.
func (c *Config) ClearInputFiles(year int) {
	if p := c.scope(year); p != nil {
		p.InputFiles = ""
	}
}

// ClearImplementation forgets the configured implementation directory for a year.
func (c *Config) ClearImplementation(year int) {
	if p := c.scope(year); p != nil {
		p.Implementation = ""
	}
}

// ClearDayTemplates forgets the configured day-template directory for a year.
func (c *Config) ClearDayTemplates(year int) {
	if p := c.scope(year); p != nil {
		p.DayTemplates = ""
	}
}
