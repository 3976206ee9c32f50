// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error types and exit codes for talentdesk commands.
//
// STANDARDIZED PATTERN:
//   - Handlers return errors; they never exit
//   - Run prints the error and returns ExitCodeFor(err)
//
// ERROR HANDLING: Errors must not be silently ignored

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/jeranaias/talentdesk/internal/api"
	"github.com/jeranaias/talentdesk/internal/storage"
	"github.com/jeranaias/talentdesk/internal/upload"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitAuthError indicates the server session is missing or rejected
	ExitAuthError = 4
	// ExitNetworkError indicates the server could not be reached
	ExitNetworkError = 5
	// ExitNotFoundError indicates a resource was not found
	ExitNotFoundError = 7
	// ExitTimeoutError indicates an operation timed out
	ExitTimeoutError = 8
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// UsageError reports invalid command usage.
type UsageError struct {
	Message string
	Example string
}

func (e *UsageError) Error() string {
	if e.Example != "" {
		return fmt.Sprintf("%s\nExample: %s", e.Message, e.Example)
	}
	return e.Message
}

// ConfigError reports an unusable configuration.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// usageErrorf builds a UsageError with an example.
func usageErrorf(example, format string, args ...any) error {
	return &UsageError{Message: fmt.Sprintf(format, args...), Example: example}
}

// =============================================================================
// EXIT CODE MAPPING
// =============================================================================

// ExitCodeFor maps an error to a process exit code.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usage *UsageError
	var cfg *ConfigError
	switch {
	case errors.As(err, &usage):
		return ExitUsageError
	case errors.As(err, &cfg):
		return ExitConfigError
	case errors.Is(err, upload.ErrNoValidFiles), errors.Is(err, api.ErrValidation):
		return ExitUsageError
	case errors.Is(err, context.DeadlineExceeded):
		return ExitTimeoutError
	case errors.Is(err, api.ErrNotAuthenticated):
		return ExitAuthError
	case errors.Is(err, api.ErrNotFound), errors.Is(err, storage.ErrConversationNotFound):
		return ExitNotFoundError
	case api.IsTransport(err):
		return ExitNetworkError
	default:
		return ExitGeneralError
	}
}

// displayText returns the text printed for a failed command.
func displayText(err error) string {
	if errors.Is(err, api.ErrNotAuthenticated) {
		return "Not signed in. Run 'talentdesk login' first."
	}
	return err.Error()
}

// textError shows text while keeping err in the chain for ExitCodeFor.
type textError struct {
	text string
	err  error
}

func (e *textError) Error() string { return e.text }

func (e *textError) Unwrap() error { return e.err }

// withText replaces err's message with the text shown to the user.
func withText(text string, err error) error {
	if text == "" {
		return err
	}
	return &textError{text: text, err: err}
}
