// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"errors"
	"net/http"
)

// ============================================================================
// ACCOUNT HANDLERS
// ============================================================================

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleRegister handles POST /register. A successful registration also
// signs the user in.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeJSON(w, r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeFailure(w, http.StatusBadRequest, "All fields are required")
		return
	}

	userID, err := s.state.register(req.Username, req.Email, req.Password)
	if errors.Is(err, errUserExists) {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		logger().WithError(err).Error("registration failed")
		writeFailure(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.setSession(w, userID)
	logger().WithField("user", req.Username).Info("USER_REGISTERED")
	writeSuccess(w, map[string]any{"message": "Registration successful"})
}

// handleLogin handles POST /login. The username field accepts either the
// username or the email address.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeJSON(w, r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeFailure(w, http.StatusBadRequest, "All fields are required")
		return
	}

	userID, err := s.state.authenticate(req.Username, req.Password)
	if err != nil {
		logger().WithField("ip", clientIP(r)).Warn("LOGIN_FAILED")
		writeFailure(w, http.StatusUnauthorized, errInvalidCredentials.Error())
		return
	}

	s.setSession(w, userID)
	writeSuccess(w, map[string]any{"message": "Login successful"})
}

// handleLogout handles GET /logout: the session is dropped and the browser
// sent back to the index.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		s.state.closeSession(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) setSession(w http.ResponseWriter, userID int64) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    s.state.openSession(userID),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
