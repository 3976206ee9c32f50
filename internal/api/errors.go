// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
	"net/http"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

var (
	// ErrTransport matches every *TransportError.
	ErrTransport = errors.New("transport failure")

	// ErrNotAuthenticated matches an *APIError with status 401.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotFound matches an *APIError with status 404.
	ErrNotFound = errors.New("not found")

	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")
)

// TransportError reports a request that produced no usable response:
// connection failures, timeouts, cancellations and unreadable bodies.
type TransportError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrTransport) true for every TransportError.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// APIError reports a response with success=false or a non-2xx status.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error (HTTP %d)", e.Status)
	}
	return fmt.Sprintf("server error (HTTP %d): %s", e.Status, e.Message)
}

// Is maps well-known statuses onto sentinel errors.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotAuthenticated:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// ValidationError reports input rejected before any request was sent.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrValidation) true for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// =============================================================================
// HELPERS
// =============================================================================

// ServerMessage returns the server-provided message of an *APIError in the
// chain, or "" when there is none.
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}
