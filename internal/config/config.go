// Package config provides configuration management and validation for walremap.
// It centralizes all command-line options and their documented defaults, and
// validates them before any file is touched.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"walremap/internal/errors"
)

// Default locations, matching where Pywal writes its cache and where
// Vicinae looks for user themes.
const (
	DefaultSourcePath      = "~/.cache/wal/colors.json"
	DefaultDestinationPath = "~/.config/vicinae/themes/pywal-theme.json"
	DefaultDebounce        = 200 * time.Millisecond
)

// Config holds all runtime configuration options for walremap.
type Config struct {
	Source      string
	Destination string
	Watch       bool
	Debounce    time.Duration
	Backup      bool
	Preview     bool
	Verbose     bool
	Debug       bool
	Quiet       bool
	LogFile     string
}

// New returns a Config populated with the default paths.
func New() *Config {
	return &Config{
		Source:      DefaultSourcePath,
		Destination: DefaultDestinationPath,
		Debounce:    DefaultDebounce,
	}
}

// Validate checks the configuration and expands home-directory shorthand in
// every path option so later stages only see absolute paths.
func (c *Config) Validate() error {
	if err := c.validateSource(); err != nil {
		return err
	}

	if err := c.validateDestination(); err != nil {
		return err
	}

	if err := c.validateVerbosity(); err != nil {
		return err
	}

	if err := c.validateLogFile(); err != nil {
		return err
	}

	c.normalizeConfig()
	return nil
}

func (c *Config) validateSource() error {
	if strings.TrimSpace(c.Source) == "" {
		return errors.NewConfigError("source path is required", nil)
	}

	expanded, err := ExpandPath(c.Source)
	if err != nil {
		return errors.NewConfigErrorWithPath(c.Source, "invalid source path", err)
	}
	c.Source = expanded
	return nil
}

func (c *Config) validateDestination() error {
	if strings.TrimSpace(c.Destination) == "" {
		return errors.NewConfigError("destination path is required", nil)
	}

	expanded, err := ExpandPath(c.Destination)
	if err != nil {
		return errors.NewConfigErrorWithPath(c.Destination, "invalid destination path", err)
	}
	if expanded == c.Source {
		return errors.NewConfigErrorWithPath(expanded, "destination must differ from source", nil)
	}
	c.Destination = expanded
	return nil
}

func (c *Config) validateVerbosity() error {
	if c.Quiet && (c.Verbose || c.Debug) {
		return errors.NewConfigError("quiet cannot be combined with verbose or debug", nil)
	}
	return nil
}

func (c *Config) validateLogFile() error {
	if c.LogFile == "" {
		return nil
	}

	expanded, err := ExpandPath(c.LogFile)
	if err != nil {
		return errors.NewConfigErrorWithPath(c.LogFile, "invalid log file path", err)
	}
	c.LogFile = expanded
	return nil
}

func (c *Config) normalizeConfig() {
	if c.Debounce <= 0 {
		c.Debounce = DefaultDebounce
	}
}

// ExpandPath replaces a leading "~" with the current user's home directory
// and returns an absolute, cleaned path. "~user" forms are left to the
// filesystem, as the shell would not have expanded them either.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}

// IsVerbose determines if verbose logging is enabled. Quiet wins over Verbose.
func (c *Config) IsVerbose() bool {
	return c.Verbose && !c.Quiet
}

// IsDebug determines if debug logging is enabled. Quiet wins over Debug.
func (c *Config) IsDebug() bool {
	return c.Debug && !c.Quiet
}

// ShouldLog reports whether informational output is wanted at all.
func (c *Config) ShouldLog() bool {
	return !c.Quiet
}

// ShouldCreateBackup determines if the previous theme file should be copied
// aside before it is overwritten. Backups are opt-in: the theme is
// regenerated on every wallpaper change and copies would pile up.
func (c *Config) ShouldCreateBackup() bool {
	return c.Backup
}
