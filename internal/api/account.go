// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"

	"github.com/jeranaias/talentdesk/internal/logging"
)

// =============================================================================
// ACCOUNT ENDPOINTS
// =============================================================================

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login opens a session. The session cookie is kept in the jar.
func (c *Client) Login(ctx context.Context, username, password string) error {
	return c.doJSON(ctx, http.MethodPost, "/login", loginRequest{Username: username, Password: password}, nil)
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	req := registerRequest{Username: username, Email: email, Password: password}
	return c.doJSON(ctx, http.MethodPost, "/register", req, nil)
}

// Logout ends the session on the server and forgets the cookie locally. The
// local session is cleared even when the server cannot be reached.
func (c *Client) Logout(ctx context.Context) error {
	_, _, err := c.do(ctx, http.MethodGet, "/logout", nil, "")
	if err != nil {
		logging.For("api").WithError(err).Warn("server logout failed; clearing local session")
	}
	if c.jar != nil {
		return c.jar.Clear()
	}
	return nil
}
