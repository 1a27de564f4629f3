// Package errors provides a hierarchical error system for walremap operations.
// Every failure of a conversion is classified into one of a small set of kinds
// so that callers can report it precisely without inspecting error strings.
package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrorType represents the category of error for classification and handling.
type ErrorType string

// Error type constants. The first four are the conversion failure kinds; the
// rest cover the surrounding tooling.
const (
	ErrTypeSourceNotFound ErrorType = "source-not-found"
	ErrTypeSchema         ErrorType = "schema-violation"
	ErrTypeMalformed      ErrorType = "malformed-input"
	ErrTypeUnexpected     ErrorType = "unexpected"
	ErrTypeConfig         ErrorType = "config"
	ErrTypeBackup         ErrorType = "backup"
	ErrTypeWatch          ErrorType = "watch"
)

// reportsOwnCause is true for the input failure kinds, whose diagnostics
// already describe the underlying problem.
func (t ErrorType) reportsOwnCause() bool {
	switch t {
	case ErrTypeSourceNotFound, ErrTypeSchema, ErrTypeMalformed:
		return true
	}
	return false
}

// WalError is the base error type that provides structured error information.
// Path names the file involved and Key the offending document key, when known.
type WalError struct {
	Type    ErrorType
	Path    string
	Key     string
	Message string
	Cause   error
}

func (e *WalError) Error() string {
	msg := e.Message
	if e.Key != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Key)
	}
	if e.Cause != nil && !e.Type.reportsOwnCause() {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s error for %s: %s", e.Type, e.Path, msg)
	}
	return fmt.Sprintf("%s error: %s", e.Type, msg)
}

// base is promoted through the wrapper types so AsWalError can find the
// underlying WalError anywhere in a chain.
func (e *WalError) base() *WalError {
	return e
}

func (e *WalError) Unwrap() error {
	return e.Cause
}

// Is implements error identity checking so that errors.Is matches any
// two errors of the same type.
func (e *WalError) Is(target error) bool {
	t, ok := target.(*WalError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// Sentinel values for use with errors.Is.
var (
	ErrSourceNotFound = &WalError{Type: ErrTypeSourceNotFound}
	ErrSchema         = &WalError{Type: ErrTypeSchema}
	ErrMalformed      = &WalError{Type: ErrTypeMalformed}
	ErrUnexpected     = &WalError{Type: ErrTypeUnexpected}
)

// SourceNotFoundError reports that the source color document does not exist.
type SourceNotFoundError struct {
	*WalError
}

// NewSourceNotFoundError creates a source-not-found error for path.
func NewSourceNotFoundError(path string, cause error) *SourceNotFoundError {
	return &SourceNotFoundError{
		WalError: &WalError{
			Type:    ErrTypeSourceNotFound,
			Path:    path,
			Message: "color scheme file not found",
			Cause:   cause,
		},
	}
}

// SchemaError reports a source document that parsed but lacks an expected
// key, holds a non-string value, or carries a key outside the known schema.
type SchemaError struct {
	*WalError
}

// NewSchemaError creates a schema-violation error naming key.
func NewSchemaError(path, key, message string) *SchemaError {
	return &SchemaError{
		WalError: &WalError{
			Type:    ErrTypeSchema,
			Path:    path,
			Key:     key,
			Message: message,
		},
	}
}

// MsgMissingKey is the message of schema violations caused by an absent key.
const MsgMissingKey = "missing expected key"

// NewMissingKeyError creates the common schema-violation for an absent key.
func NewMissingKeyError(path, key string) *SchemaError {
	return NewSchemaError(path, key, MsgMissingKey)
}

// MalformedInputError reports a source document that is not valid JSON.
type MalformedInputError struct {
	*WalError
}

// NewMalformedInputError creates a malformed-input error for path.
func NewMalformedInputError(path string, cause error) *MalformedInputError {
	return &MalformedInputError{
		WalError: &WalError{
			Type:    ErrTypeMalformed,
			Path:    path,
			Message: "invalid JSON format",
			Cause:   cause,
		},
	}
}

// UnexpectedError covers every other failure: permissions, I/O, disk errors.
type UnexpectedError struct {
	*WalError
}

// NewUnexpectedError creates an unexpected error with context.
func NewUnexpectedError(path, message string, cause error) *UnexpectedError {
	return &UnexpectedError{
		WalError: &WalError{
			Type:    ErrTypeUnexpected,
			Path:    path,
			Message: message,
			Cause:   cause,
		},
	}
}

// ConfigError represents configuration validation errors.
type ConfigError struct {
	*WalError
}

// NewConfigError creates a configuration error without path context.
func NewConfigError(message string, cause error) *ConfigError {
	return &ConfigError{
		WalError: &WalError{
			Type:    ErrTypeConfig,
			Message: message,
			Cause:   cause,
		},
	}
}

// NewConfigErrorWithPath creates a configuration error tied to a path option.
func NewConfigErrorWithPath(path, message string, cause error) *ConfigError {
	return &ConfigError{
		WalError: &WalError{
			Type:    ErrTypeConfig,
			Path:    path,
			Message: message,
			Cause:   cause,
		},
	}
}

// BackupError represents errors during backup and restore operations.
type BackupError struct {
	*WalError
}

// NewBackupError creates a backup operation error.
func NewBackupError(path, message string, cause error) *BackupError {
	return &BackupError{
		WalError: &WalError{
			Type:    ErrTypeBackup,
			Path:    path,
			Message: message,
			Cause:   cause,
		},
	}
}

// WatchError represents failures setting up or running the source watcher.
type WatchError struct {
	*WalError
}

// NewWatchError creates a watch error.
func NewWatchError(path, message string, cause error) *WatchError {
	return &WatchError{
		WalError: &WalError{
			Type:    ErrTypeWatch,
			Path:    path,
			Message: message,
			Cause:   cause,
		},
	}
}

// WrapSourceError classifies an error from opening or reading the source
// document. Missing files become source-not-found, everything else unexpected.
func WrapSourceError(path string, err error) error {
	if err == nil {
		return nil
	}

	if isNotFoundError(err) {
		return NewSourceNotFoundError(path, err)
	}
	return NewUnexpectedError(path, "failed to read color scheme", err)
}

// AsWalError finds the first WalError in err's chain, looking through the
// typed wrappers.
func AsWalError(err error) (*WalError, bool) {
	var b interface{ base() *WalError }
	if stderrors.As(err, &b) {
		return b.base(), true
	}
	return nil, false
}

// KindOf returns the ErrorType carried by err, or ErrTypeUnexpected when err
// is not part of this hierarchy.
func KindOf(err error) ErrorType {
	if we, ok := AsWalError(err); ok {
		return we.Type
	}
	return ErrTypeUnexpected
}

func isNotFoundError(err error) bool {
	return stderrors.Is(err, fs.ErrNotExist) || os.IsNotExist(err)
}
