// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api is the HTTP client for the assistant and resume server.
//
// Every JSON endpoint answers with an envelope carrying "success" and, on
// failure, "message". The client turns those into typed errors:
//
//   - *TransportError: the request never produced a response (errors.Is ErrTransport)
//   - *APIError: the server answered with success=false or a non-2xx status
//   - *ValidationError: the input was rejected before any request was sent
//
// Nothing is retried. The session cookie lives in a Jar that can be
// persisted to disk, each request carries an X-Request-ID, and requests are
// paced by a token-bucket limiter.
//
// # Usage
//
//	client := api.NewClient("http://localhost:5000").
//	    WithTimeout(30 * time.Second).
//	    WithJar(jar)
//	convs, err := client.ListConversations(ctx)
package api
