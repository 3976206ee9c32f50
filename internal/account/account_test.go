// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package account

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/talentdesk/internal/api"
)

// fakeAuth records calls and fails with a canned error.
type fakeAuth struct {
	err   error
	calls int
}

func (f *fakeAuth) Login(context.Context, string, string) error {
	f.calls++
	return f.err
}

func (f *fakeAuth) Register(context.Context, string, string, string) error {
	f.calls++
	return f.err
}

func (f *fakeAuth) Logout(context.Context) error {
	f.calls++
	return f.err
}

func TestRegistration_Validate(t *testing.T) {
	tests := []struct {
		name string
		reg  Registration
		want string
	}{
		{"short username", Registration{Username: "ab", Password: "secret1", ConfirmPassword: "secret1"}, "Username must be at least 3 characters"},
		{"short password", Registration{Username: "abc", Password: "12345", ConfirmPassword: "12345"}, "Password must be at least 6 characters"},
		{"mismatch", Registration{Username: "abc", Password: "123456", ConfirmPassword: "1234567"}, "Passwords do not match"},
		{"username checked first", Registration{Username: "a", Password: "1"}, "Username must be at least 3 characters"},
		{"runes not bytes", Registration{Username: "日本", Password: "123456", ConfirmPassword: "123456"}, "Username must be at least 3 characters"},
		{"valid", Registration{Username: "abc", Password: "123456", ConfirmPassword: "123456"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reg.Validate()
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, api.ErrValidation)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestRegister_InvalidSendsNothing(t *testing.T) {
	auth := &fakeAuth{}
	err := Register(context.Background(), auth, Registration{Username: "ab"})
	require.Error(t, err)
	assert.Zero(t, auth.calls)
}

func TestLogin_ErrorTexts(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server message", &api.APIError{Status: 401, Message: "Invalid credentials"}, "Invalid credentials"},
		{"no message", &api.APIError{Status: 500}, LoginFailedText},
		{"transport", &api.TransportError{Op: "login", Err: errors.New("refused")}, NetworkErrorText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Login(context.Background(), &fakeAuth{err: tt.err}, "abc", "secret")
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestRegister_Fallback(t *testing.T) {
	auth := &fakeAuth{err: &api.APIError{Status: 500}}
	err := Register(context.Background(), auth, Registration{
		Username: "abc", Email: "a@b.c", Password: "123456", ConfirmPassword: "123456",
	})
	require.Error(t, err)
	assert.Equal(t, RegistrationFailedText, err.Error())
	assert.Equal(t, 1, auth.calls)
}

func TestLoginAndLogout_Success(t *testing.T) {
	auth := &fakeAuth{}
	require.NoError(t, Login(context.Background(), auth, "abc", "secret"))
	require.NoError(t, Logout(context.Background(), auth))
	assert.Equal(t, 2, auth.calls)
}
