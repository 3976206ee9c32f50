// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jeranaias/talentdesk/internal/logging"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// DefaultBaseURL is the development server address.
	DefaultBaseURL = "http://localhost:5000"

	// DefaultTimeout bounds a single request.
	DefaultTimeout = 60 * time.Second

	// DefaultRequestsPerSecond paces outgoing requests; zero means unlimited.
	DefaultRequestsPerSecond = 0.0

	// MaxResponseSize is the maximum accepted response body size.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 10 * 1024 * 1024

	// RequestIDHeader carries a per-request correlation id.
	RequestIDHeader = "X-Request-ID"

	userAgent = "talentdesk/1.0"
)

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the server. It is safe for concurrent use; overlapping
// calls are independent and complete in arrival order.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	jar        *Jar
}

// NewClient returns a client for baseURL with default timeout and pacing
// and an in-memory cookie jar.
func NewClient(baseURL string) *Client {
	jar := NewJar("")
	return (&Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			Jar:     jar,
		},
		jar: jar,
	}).WithRateLimit(DefaultRequestsPerSecond)
}

// WithTimeout sets the per-request timeout. Zero disables it.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// WithRateLimit sets the request rate. Zero or negative disables pacing.
// The burst allows one second's worth of requests at once.
func (c *Client) WithRateLimit(perSecond float64) *Client {
	if perSecond <= 0 {
		c.limiter = rate.NewLimiter(rate.Inf, 1)
		return c
	}
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	return c
}

// WithJar replaces the cookie jar.
func (c *Client) WithJar(jar *Jar) *Client {
	c.jar = jar
	c.httpClient.Jar = jar
	return c
}

// WithTransport replaces the HTTP transport, mainly for tests.
func (c *Client) WithTransport(rt http.RoundTripper) *Client {
	c.httpClient.Transport = rt
	return c
}

// BaseURL returns the server address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Jar returns the cookie jar holding the session.
func (c *Client) Jar() *Jar {
	return c.jar
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// envelope is the common part of every JSON response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// do sends one request and returns the status and body. Any failure before a
// complete body was read is a *TransportError.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (int, []byte, error) {
	op := method + " " + path

	if err := c.limiter.Wait(ctx); err != nil {
		return 0, nil, &TransportError{Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, &TransportError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("User-Agent", userAgent)
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	log := logging.For("api").WithField("request_id", requestID)
	log.Debugf("API Request: %s", op)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Warnf("API Request failed: %s", op)
		return 0, nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := readResponse(resp)
	if err != nil {
		return resp.StatusCode, nil, &TransportError{Op: op, Err: err}
	}
	log.Debugf("API Response: %d (%v)", resp.StatusCode, time.Since(start))

	if c.jar != nil && c.jar.Dirty() {
		if err := c.jar.Save(); err != nil {
			log.WithError(err).Warn("failed to persist session cookie")
		}
	}
	return resp.StatusCode, data, nil
}

// readResponse reads the body with a size limit.
// SECURITY: Response size limit prevents memory exhaustion.
func readResponse(resp *http.Response) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(data) > MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return data, nil
}

// doJSON sends an optional JSON body and decodes the envelope and payload.
// A non-2xx status or success=false becomes an *APIError.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	status, data, err := c.do(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	return decodeEnvelope(method+" "+path, status, data, out)
}

// decodeEnvelope checks the envelope and decodes the payload into out.
func decodeEnvelope(op string, status int, data []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		if status < 200 || status > 299 {
			return &APIError{Status: status, Message: http.StatusText(status)}
		}
		return &TransportError{Op: op, Err: fmt.Errorf("parse response: %w", err)}
	}

	if status < 200 || status > 299 || !env.Success {
		return &APIError{Status: status, Message: env.Message}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &TransportError{Op: op, Err: fmt.Errorf("parse response: %w", err)}
		}
	}
	return nil
}
