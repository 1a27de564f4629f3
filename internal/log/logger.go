// Package log provides the leveled diagnostics sink used by walremap and
// keeps a record of every conversion for the end-of-run summary.
package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"walremap/internal/config"
	"walremap/internal/converter"
	"walremap/internal/errors"
)

// TimestampFormat is the layout of the timestamp on every diagnostic line.
const TimestampFormat = "2006-01-02 15:04:05"

// Formatter renders entries as "[timestamp] [LEVEL] message key=value ...".
type Formatter struct{}

// Format implements logrus.Formatter.
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "[%s] [%s] %s",
		entry.Time.Format(TimestampFormat),
		strings.ToUpper(entry.Level.String()),
		entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

// Entry records the outcome of one conversion.
type Entry struct {
	Timestamp   string `json:"timestamp"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	BackupPath  string `json:"backup_path,omitempty"`
	Success     bool   `json:"success"`
	Kind        string `json:"kind,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Summary provides aggregate statistics over all conversions of a run.
type Summary struct {
	Conversions int           `json:"conversions"`
	Succeeded   int           `json:"succeeded"`
	Failed      int           `json:"failed"`
	Elapsed     time.Duration `json:"elapsed"`
}

// Logger owns the logrus logger handed to the converter and records results.
type Logger struct {
	config  *config.Config
	log     *logrus.Logger
	writer  io.Writer
	entries []Entry
	summary Summary
	started time.Time
}

// NewLogger creates a Logger writing to stderr, or appending to the
// configured log file.
func NewLogger(cfg *config.Config) (*Logger, error) {
	var writer io.Writer = os.Stderr

	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", cfg.LogFile, err)
		}
		writer = file
	}

	return newLogger(cfg, writer), nil
}

func newLogger(cfg *config.Config, writer io.Writer) *Logger {
	logger := logrus.New()
	logger.SetOutput(writer)
	logger.SetFormatter(&Formatter{})
	logger.SetLevel(levelFor(cfg))

	return &Logger{
		config:  cfg,
		log:     logger,
		writer:  writer,
		entries: []Entry{},
		started: time.Now(),
	}
}

func levelFor(cfg *config.Config) logrus.Level {
	switch {
	case cfg.IsDebug(), cfg.IsVerbose():
		return logrus.DebugLevel
	case !cfg.ShouldLog():
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}

// Sink returns the logger to inject into the converter and the watcher.
func (l *Logger) Sink() logrus.FieldLogger {
	return l.log
}

// LogResult records a conversion outcome and logs the per-run verdict.
func (l *Logger) LogResult(result converter.Result) {
	entry := Entry{
		Timestamp:   time.Now().Format(time.RFC3339),
		Source:      result.Source,
		Destination: result.Destination,
		BackupPath:  result.BackupPath,
		Success:     result.OK(),
	}

	l.summary.Conversions++
	if result.OK() {
		l.summary.Succeeded++
		l.log.Info("Theme updated successfully.")
	} else {
		entry.Kind = string(errors.KindOf(result.Err))
		entry.Error = result.Err.Error()
		l.summary.Failed++
		l.log.Warn("Theme update failed. Ensure Pywal has generated colors.")
	}

	l.entries = append(l.entries, entry)

	if l.config.IsVerbose() {
		l.logVerbose(entry)
	}
}

func (l *Logger) logVerbose(entry Entry) {
	fields := logrus.Fields{
		"source":      entry.Source,
		"destination": entry.Destination,
	}
	if entry.BackupPath != "" {
		fields["backup"] = entry.BackupPath
	}
	if entry.Kind != "" {
		fields["kind"] = entry.Kind
	}
	l.log.WithFields(fields).Debug("conversion recorded")
}

// Summary returns the aggregate statistics so far.
func (l *Logger) Summary() Summary {
	s := l.summary
	s.Elapsed = time.Since(l.started)
	return s
}

// WriteReport logs the totals of a multi-conversion run.
func (l *Logger) WriteReport() {
	s := l.Summary()
	l.log.WithFields(logrus.Fields{
		"conversions": s.Conversions,
		"succeeded":   s.Succeeded,
		"failed":      s.Failed,
		"elapsed":     s.Elapsed.Round(time.Millisecond),
	}).Info("Stopped watching")
}

// Close releases the log file, if any. os.Stderr is never closed.
func (l *Logger) Close() error {
	if closer, ok := l.writer.(io.Closer); ok && l.writer != os.Stderr {
		return closer.Close()
	}
	return nil
}
