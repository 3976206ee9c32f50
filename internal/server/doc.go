// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server provides the talentdesk development server: an in-memory
// implementation of the chat and resume HTTP contract the client speaks.
//
// # Endpoints
//
//   - POST /register, POST /login, GET /logout - session cookie auth
//   - GET  /get-conversations                  - newest first
//   - POST /new-conversation
//   - GET  /load-conversation/{id}
//   - POST /send-message                       - stores both sides, derives the title
//   - POST /get                                - legacy stateless reply (form field msg)
//   - POST /upload-resume                      - multipart scoring, sorted by score
//   - POST /download-csv
//   - GET  /get-resume-history                 - last 10 analyses
//
// Every JSON response carries "success" and, on failure, "message".
//
// # Security Features
//
//   - bcrypt password hashes (golang.org/x/crypto)
//   - HttpOnly SameSite session cookies holding random tokens
//   - Per-IP rate limiting of login and registration
//   - Security headers (X-Content-Type-Options, X-Frame-Options, etc.)
//   - Upload size limit
//
// # Usage
//
//	srv := server.NewServer(server.Options{Addr: "127.0.0.1:5000"})
//	go srv.Start()
//	defer srv.Shutdown(ctx)
//
// Tests mount srv.Handler() on an httptest.Server instead.
package server
