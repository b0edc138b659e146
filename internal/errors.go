package internal

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session id has no record.
// Callers surface it as an empty state, never as a fatal error.
var ErrSessionNotFound = errors.New("session not found")

// StoreError represents errors accessing the session database
type StoreError struct {
	Op        string // "open", "query", "insert", "update", "delete"
	SessionID string
	Err       error
}

func (e *StoreError) Error() string {
	if e.SessionID != "" {
		return fmt.Sprintf("store error: %s [%s]: %v", e.Op, e.SessionID, e.Err)
	}
	return fmt.Sprintf("store error: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// FileStoreError represents directory or image file failures
type FileStoreError struct {
	Path string
	Op   string // "mkdir", "list", "read", "write", "remove", "watch"
	Err  error
}

func (e *FileStoreError) Error() string {
	return fmt.Sprintf("file store error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileStoreError) Unwrap() error {
	return e.Err
}

// PermissionError represents a denied camera or storage permission.
// Kept distinct from FileStoreError so the caller can render a
// dedicated state instead of a generic I/O failure.
type PermissionError struct {
	Resource string // "camera", "storage"
	Err      error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: %s: %v", e.Resource, e.Err)
}

func (e *PermissionError) Unwrap() error {
	return e.Err
}

// InvalidInputError represents a rejected finalize input
type InvalidInputError struct {
	Field  string // "name", "age"
	Value  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}
