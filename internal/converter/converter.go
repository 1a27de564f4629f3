// Package converter turns a Pywal color scheme into a Vicinae theme file.
package converter

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"walremap/internal/backup"
	"walremap/internal/config"
	"walremap/internal/errors"
	"walremap/internal/scheme"
	"walremap/internal/theme"
)

// Result is the outcome of one conversion. Err is nil on success and
// otherwise carries one of the conversion error kinds.
//
// Source and Destination hold the resolved absolute paths once expansion
// succeeded, so callers can report exactly which files were touched.
// BackupPath is set only when a copy of a differing previous theme was kept.
type Result struct {
	Source      string
	Destination string
	BackupPath  string
	Theme       *theme.Theme
	Err         error
}

// OK reports whether the conversion succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Converter performs conversions and reports their diagnostics to a sink.
// A Converter holds no per-run state, so watch mode reuses one for every
// change. Failures are returned in the Result and logged, never panicked or
// written to stdout.
type Converter struct {
	log    logrus.FieldLogger
	backup *backup.Manager
}

// Option configures a Converter.
type Option func(*Converter)

// WithBackup makes the converter copy an existing theme aside before
// overwriting it.
func WithBackup(m *backup.Manager) Option {
	return func(c *Converter) {
		c.backup = m
	}
}

// New creates a Converter logging to sink.
func New(sink logrus.FieldLogger, opts ...Option) *Converter {
	c := &Converter{
		log:    sink,
		backup: backup.NewBackupManager(false),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert reads the scheme at sourcePath and writes the theme to destPath.
// Both paths may start with "~". The destination is left untouched unless
// the source was read and projected successfully.
func (c *Converter) Convert(sourcePath, destPath string) Result {
	result := Result{Source: sourcePath, Destination: destPath}

	if destPath == "" {
		result.Err = errors.NewUnexpectedError("", "destination path is empty", nil)
		c.reportFailure(result.Err)
		return result
	}

	th, err := c.convert(&result)
	if err != nil {
		result.Err = err
		c.reportFailure(err)
		return result
	}

	result.Theme = th
	c.log.Infof("Successfully updated Vicinae theme at %s", result.Destination)
	return result
}

func (c *Converter) convert(result *Result) (*theme.Theme, error) {
	source, err := config.ExpandPath(result.Source)
	if err != nil {
		return nil, errors.NewUnexpectedError(result.Source, "failed to resolve source path", err)
	}
	result.Source = source

	dest, err := config.ExpandPath(result.Destination)
	if err != nil {
		return nil, errors.NewUnexpectedError(result.Destination, "failed to resolve destination path", err)
	}
	result.Destination = dest

	c.log.WithField("source", source).Debug("loading color scheme")
	s, err := scheme.Load(source)
	if err != nil {
		return nil, err
	}
	c.log.WithFields(logrus.Fields{
		"source": s.Path(),
		"slots":  s.SlotsPresent(),
	}).Debug("color scheme loaded")

	th, err := theme.FromScheme(s)
	if err != nil {
		return nil, err
	}

	data, err := th.Encode()
	if err != nil {
		return nil, errors.NewUnexpectedError(dest, "failed to encode theme", err)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return nil, errors.NewUnexpectedError(filepath.Dir(dest), "failed to create theme directory", err)
	}

	if c.backup.Enabled() {
		backupPath, err := c.backupPrevious(dest, data)
		if err != nil {
			return nil, err
		}
		result.BackupPath = backupPath
	}

	if err := os.WriteFile(dest, data, 0644); err != nil {
		return nil, errors.NewUnexpectedError(dest, "failed to write theme", err)
	}

	return th, nil
}

// backupPrevious copies the theme at dest aside. A copy identical to the
// new theme is removed again so repeated conversions do not pile up backups.
func (c *Converter) backupPrevious(dest string, data []byte) (string, error) {
	backupPath, err := c.backup.BackupFile(dest)
	if err != nil {
		return "", errors.NewUnexpectedError(dest, "failed to back up previous theme", err)
	}
	if backupPath == "" {
		return "", nil
	}

	previous, err := os.ReadFile(backupPath)
	if err == nil && bytes.Equal(previous, data) {
		if err := c.backup.CleanupBackup(backupPath); err != nil {
			return "", errors.NewUnexpectedError(dest, "failed to discard unchanged backup", err)
		}
		c.log.WithField("destination", dest).Debug("theme unchanged, backup discarded")
		return "", nil
	}

	c.log.WithField("backup", backupPath).Debug("previous theme backed up")
	return backupPath, nil
}

func (c *Converter) reportFailure(err error) {
	we, ok := errors.AsWalError(err)
	if !ok {
		c.log.WithError(err).Error("Unexpected error during theme conversion")
		return
	}

	entry := c.log.WithField("kind", we.Type)
	switch we.Type {
	case errors.ErrTypeSourceNotFound:
		entry.Errorf("Pywal colors.json file not found at %s", we.Path)
	case errors.ErrTypeSchema:
		if we.Message == errors.MsgMissingKey {
			entry.Errorf("Missing expected key in Pywal colors.json: %s", we.Key)
		} else {
			entry.Errorf("Invalid Pywal colors.json at %s: %s: %s", we.Path, we.Key, we.Message)
		}
	case errors.ErrTypeMalformed:
		entry.WithError(we.Cause).Errorf("Invalid JSON format in Pywal file: %s", we.Path)
	default:
		entry.Errorf("Unexpected error during theme conversion: %v", err)
	}
}
