// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package account signs the user in to the chat server and registers new
// accounts. Registration input is validated before any request is sent.
package account

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/jeranaias/talentdesk/internal/api"
	"github.com/jeranaias/talentdesk/internal/logging"
)

// Validation limits.
const (
	MinUsernameLen = 3
	MinPasswordLen = 6
)

// User-facing texts.
const (
	LoginFailedText        = "Login failed"
	RegistrationFailedText = "Registration failed"
	NetworkErrorText       = "Network error. Please try again."
)

// Authenticator is the part of the server contract accounts use.
// *api.Client satisfies it.
type Authenticator interface {
	Login(ctx context.Context, username, password string) error
	Register(ctx context.Context, username, email, password string) error
	Logout(ctx context.Context) error
}

// Registration is the register form.
type Registration struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Validate checks the registration form in order and returns the first
// failure as an *api.ValidationError.
func (r Registration) Validate() error {
	if utf8.RuneCountInString(r.Username) < MinUsernameLen {
		return &api.ValidationError{Field: "username", Message: "Username must be at least 3 characters"}
	}
	if utf8.RuneCountInString(r.Password) < MinPasswordLen {
		return &api.ValidationError{Field: "password", Message: "Password must be at least 6 characters"}
	}
	if r.Password != r.ConfirmPassword {
		return &api.ValidationError{Field: "confirm_password", Message: "Passwords do not match"}
	}
	return nil
}

// Login signs in. On failure the returned error's text is suitable for
// display: the server's message, "Login failed", or the network text.
func Login(ctx context.Context, auth Authenticator, username, password string) error {
	if err := auth.Login(ctx, username, password); err != nil {
		logging.For("account").WithError(err).Warn("login failed")
		return displayError(err, LoginFailedText)
	}
	logging.For("account").WithField("user", username).Info("signed in")
	return nil
}

// Register validates the form and creates the account. The server signs
// the new user in on success.
func Register(ctx context.Context, auth Authenticator, r Registration) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := auth.Register(ctx, r.Username, r.Email, r.Password); err != nil {
		logging.For("account").WithError(err).Warn("registration failed")
		return displayError(err, RegistrationFailedText)
	}
	logging.For("account").WithField("user", r.Username).Info("registered")
	return nil
}

// Logout ends the session and forgets the stored cookie.
func Logout(ctx context.Context, auth Authenticator) error {
	return auth.Logout(ctx)
}

// DisplayError carries the text shown for a failed account action and
// wraps the underlying error.
type DisplayError struct {
	Text string
	Err  error
}

func (e *DisplayError) Error() string { return e.Text }

func (e *DisplayError) Unwrap() error { return e.Err }

// displayError maps err to the text shown to the user.
func displayError(err error, fallback string) error {
	var verr *api.ValidationError
	switch {
	case errors.As(err, &verr):
		return err
	case api.IsTransport(err):
		return &DisplayError{Text: NetworkErrorText, Err: err}
	}
	if msg := api.ServerMessage(err); msg != "" {
		return &DisplayError{Text: msg, Err: err}
	}
	return &DisplayError{Text: fallback, Err: err}
}
