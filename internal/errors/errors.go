// Package errors provides standardized error handling for photocull.
// It defines the error kinds raised by the collaborators around the
// in-memory model (scanner, mover, store, config) together with helpers
// for consistent creation, wrapping and inspection.
package errors

import (
	"errors"
	"fmt"
	"os"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// Common error constants for frequently occurring errors
var (
	ErrFileNotFound  = NewFileError("file not found", "", FileNotFound, nil)
	ErrNotADirectory = NewFileError("not a directory", "", NotADirectory, nil)
	ErrInvalidConfig = NewConfigError("invalid configuration", "", InvalidConfig, nil)
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// File error kinds
	FileNotFound
	FileAccessDenied
	InvalidPath
	NotADirectory
	DecodeFailed
	// Move error kinds
	MoveFailed
	MoveCollision
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	// Store error kinds
	StoreOpenFailed
	StoreQueryFailed
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// FileError represents errors related to file operations
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// FromOS classifies an os error for path into a FileError.
func FromOS(msg, path string, err error) *FileError {
	kind := Unknown
	switch {
	case os.IsNotExist(err):
		kind = FileNotFound
	case os.IsPermission(err):
		kind = FileAccessDenied
	}
	return NewFileError(msg, path, kind, err)
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// MoveError represents a failed relocation of one photo
type MoveError struct {
	ApplicationError
	source string
	dest   string
}

// NewMoveError creates a new move error
func NewMoveError(msg, source, dest string, kind ErrorKind, err error) *MoveError {
	return &MoveError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		source: source,
		dest:   dest,
	}
}

// Error returns the move error message
func (e *MoveError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s -> %s: %v", e.msg, e.source, e.dest, e.err)
	}
	return fmt.Sprintf("%s: %s -> %s", e.msg, e.source, e.dest)
}

// Source returns the path that was being moved
func (e *MoveError) Source() string {
	return e.source
}

// Destination returns the intended destination path
func (e *MoveError) Destination() string {
	return e.dest
}

// StoreError represents errors related to the layout database
type StoreError struct {
	ApplicationError
	operation string
}

// NewStoreError creates a new store error
func NewStoreError(msg, operation string, kind ErrorKind, err error) *StoreError {
	return &StoreError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		operation: operation,
	}
}

// Error returns the store error message
func (e *StoreError) Error() string {
	if e.operation != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: operation=%s: %v", e.msg, e.operation, e.err)
		}
		return fmt.Sprintf("%s: operation=%s", e.msg, e.operation)
	}
	return e.ApplicationError.Error()
}

// Operation returns the store operation associated with the error
func (e *StoreError) Operation() string {
	return e.operation
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// KindOf returns the kind of the outermost application error in err's
// chain that carries one. Plain Wrap layers are skipped.
func KindOf(err error) ErrorKind {
	for err != nil {
		var kinded interface{ Kind() ErrorKind }
		if !errors.As(err, &kinded) {
			return Unknown
		}
		if k := kinded.Kind(); k != Unknown {
			return k
		}
		err = errors.Unwrap(kinded.(error))
	}
	return Unknown
}

// IsFileNotFound checks if the error is a file not found error
func IsFileNotFound(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == FileNotFound
	}
	return false
}

// IsFileAccessDenied checks if the error is a file access denied error
func IsFileAccessDenied(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == FileAccessDenied
	}
	return false
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}

// IsMoveError checks if the error came from relocating a photo
func IsMoveError(err error) bool {
	var moveErr *MoveError
	return errors.As(err, &moveErr)
}

// IsStoreError checks if the error is a layout store error
func IsStoreError(err error) bool {
	var storeErr *StoreError
	return errors.As(err, &storeErr)
}
