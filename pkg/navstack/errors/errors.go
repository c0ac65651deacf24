// Package errors provides sentinel errors and custom error types for navstack.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrInvalidTree indicates a navigation tree failed structural validation
	// (empty key, active index out of range, duplicate pane role).
	ErrInvalidTree = errors.New("invalid navigation tree")

	// ErrDuplicateKey indicates two nodes in one tree share a key.
	ErrDuplicateKey = errors.New("duplicate node key")

	// ErrMissingContent indicates a reachable screen has no content registered.
	// This is a defect in whatever produced the tree.
	ErrMissingContent = errors.New("missing content for reachable screen")

	// ErrLockImbalance indicates an unlock without a matching lock.
	ErrLockImbalance = errors.New("surface lock imbalance")

	// ErrUnknownEntry indicates an operation on a cache key that was never created.
	ErrUnknownEntry = errors.New("unknown cache entry")

	// ErrConfig indicates an invalid configuration value.
	ErrConfig = errors.New("invalid configuration")
)

// DuplicateKeyError reports the two tree paths that share a key.
type DuplicateKeyError struct {
	Key    string
	First  string
	Second string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("key %q used at %s and %s", e.Key, e.First, e.Second)
}

// Is returns true if the target error is ErrDuplicateKey
func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

// NewDuplicateKeyError creates a new DuplicateKeyError
func NewDuplicateKeyError(key, first, second string) *DuplicateKeyError {
	return &DuplicateKeyError{Key: key, First: first, Second: second}
}

// MissingContentError names the screen whose destination could not be resolved.
type MissingContentError struct {
	Key         string
	Destination string
}

func (e *MissingContentError) Error() string {
	return fmt.Sprintf("screen %q: no content for destination %q", e.Key, e.Destination)
}

// Is returns true if the target error is ErrMissingContent
func (e *MissingContentError) Is(target error) bool {
	return target == ErrMissingContent
}

// NewMissingContentError creates a new MissingContentError
func NewMissingContentError(key, destination string) *MissingContentError {
	return &MissingContentError{Key: key, Destination: destination}
}

// DefectError represents a programming defect detected at runtime: a broken
// invariant that the caller must fix rather than handle. Operations that
// detect one panic with it.
type DefectError struct {
	Op  string // Operation that detected the defect (e.g., "unlock")
	Key string // Cache or node key involved, if any
	Err error  // Underlying sentinel
}

func (e *DefectError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("navstack: %s %q: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("navstack: %s: %v", e.Op, e.Err)
}

func (e *DefectError) Unwrap() error {
	return e.Err
}

// NewDefectError creates a new defect error.
func NewDefectError(op, key string, err error) *DefectError {
	return &DefectError{Op: op, Key: key, Err: err}
}

// IsDefect checks if an error is a programming defect.
func IsDefect(err error) bool {
	var defect *DefectError
	return errors.As(err, &defect)
}
