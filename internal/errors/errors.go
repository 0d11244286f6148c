package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/aisle/internal/logger"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrStorage  = stderrors.New("storage error")
	ErrParse    = stderrors.New("parse error")
	ErrNotFound = stderrors.New("not found")
)

// StorageError reports a failed read or write against the key-value store.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// ParseError reports a stored value that is not valid JSON for its document.
type ParseError struct {
	Key string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %q: %v", e.Key, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// NotFoundError is returned when mutating a document that was never initialized.
type NotFoundError struct {
	Document string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s details found", e.Document)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// Storage wraps err as a StorageError unless it already is one.
func Storage(op, key string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if stderrors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Key: key, Err: err}
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
