package domain

import "fmt"

// UpstreamError means the catalog fetch failed; it is fatal to the whole
// sync pass.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream: %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// StorageError means repository I/O failed. It is propagated, not retried;
// retry policy belongs to the caller.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// GenerationError means the AI call failed or returned malformed output.
// It is recoverable: the pass records it per product and continues.
type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("generation: %s", e.Reason)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ValidationError means an inbound event was malformed or unauthenticated.
// It is rejected at ingress and never reaches the core.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}
