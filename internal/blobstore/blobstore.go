// Package blobstore defines the backend-agnostic contract for the remote
// store holding the list payloads.
//
// A store keeps named byte payloads, each with an opaque revision token.
// Writes carry the revision the caller last saw; a store rejects the write
// with ErrConflict when it can tell the payload moved on. That check is
// best-effort (several backends only emulate it with read-then-write), so
// callers must not rely on it as their only protection.
package blobstore

import (
	"context"
	"errors"
	"fmt"
)

// Blob is one payload as read from the store.
type Blob struct {
	Content  []byte
	Revision string
}

// Store is implemented by every remote backend.
// Commands never import a backend SDK directly.
type Store interface {
	// Fetch returns the payload at path.
	// Returns ErrNotFound if nothing has been written there yet.
	Fetch(ctx context.Context, path string) (Blob, error)

	// Put replaces the payload at path and returns the new revision.
	// expectedRevision is the revision the caller based the write on;
	// empty means the caller believes path does not exist yet.
	Put(ctx context.Context, path string, content []byte, expectedRevision string) (string, error)
}

var (
	// ErrNotFound is returned by Fetch when path has never been written.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned by Put when expectedRevision is out of date.
	ErrConflict = errors.New("revision conflict")

	// ErrUnauthorized is returned when the store rejects the credentials.
	ErrUnauthorized = errors.New("credentials rejected")
)

// RejectedError reports a non-success response that is neither a conflict
// nor an auth failure.
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote rejected request (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("remote rejected request (status %d): %s", e.StatusCode, e.Message)
}

// TransientError wraps network-level failures: connection errors, timeouts,
// and server errors worth retrying on a later trigger.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return "network error: " + e.Err.Error() }
func (e *TransientError) Unwrap() error { return e.Err }

// Transient wraps err as a TransientError. A nil err stays nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Err: err}
}

// IsTransient reports whether err (or anything it wraps) is transient.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
