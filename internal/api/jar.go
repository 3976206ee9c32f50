// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/jeranaias/talentdesk/internal/util"
)

// =============================================================================
// PERSISTENT COOKIE JAR
// =============================================================================

// Jar is an http.CookieJar that remembers the cookies the server set so the
// session survives restarts. Cookies are written to path with 0600
// permissions; an empty path keeps them in memory only.
type Jar struct {
	mu      sync.Mutex
	inner   *cookiejar.Jar
	path    string
	origin  *url.URL
	cookies map[string]*http.Cookie
	dirty   bool
}

// jarFile is the on-disk layout.
type jarFile struct {
	URL     string         `json:"url"`
	Cookies []*http.Cookie `json:"cookies"`
}

// NewJar returns an empty jar persisted at path.
func NewJar(path string) *Jar {
	inner, _ := cookiejar.New(nil)
	return &Jar{
		inner:   inner,
		path:    path,
		cookies: make(map[string]*http.Cookie),
	}
}

// LoadJar returns a jar persisted at path, restoring any saved cookies. A
// missing file yields an empty jar.
func LoadJar(path string) (*Jar, error) {
	j := NewJar(path)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return j, nil
	}
	if err != nil {
		return j, fmt.Errorf("read cookie jar: %w", err)
	}

	var f jarFile
	if err := json.Unmarshal(data, &f); err != nil {
		return j, fmt.Errorf("parse cookie jar: %w", err)
	}
	u, err := url.Parse(f.URL)
	if err != nil || u.Host == "" {
		return j, nil
	}

	now := time.Now()
	live := make([]*http.Cookie, 0, len(f.Cookies))
	for _, c := range f.Cookies {
		if !c.Expires.IsZero() && c.Expires.Before(now) {
			continue
		}
		live = append(live, c)
		j.cookies[c.Name] = c
	}
	j.origin = u
	j.inner.SetCookies(u, live)
	return j, nil
}

// SetCookies implements http.CookieJar.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.inner.SetCookies(u, cookies)
	j.origin = &url.URL{Scheme: u.Scheme, Host: u.Host}
	for _, c := range cookies {
		if c.MaxAge < 0 || (!c.Expires.IsZero() && c.Expires.Before(time.Now())) {
			delete(j.cookies, c.Name)
		} else {
			j.cookies[c.Name] = c
		}
	}
	j.dirty = true
}

// Cookies implements http.CookieJar.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	inner := j.inner
	j.mu.Unlock()
	return inner.Cookies(u)
}

// HasSession reports whether any cookie is held.
func (j *Jar) HasSession() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.cookies) > 0
}

// Dirty reports whether cookies changed since the last Save.
func (j *Jar) Dirty() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.dirty
}

// Save writes the cookies to disk. It is a no-op for in-memory jars.
func (j *Jar) Save() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.path == "" || j.origin == nil {
		j.dirty = false
		return nil
	}

	f := jarFile{URL: j.origin.String(), Cookies: make([]*http.Cookie, 0, len(j.cookies))}
	for _, c := range j.cookies {
		f.Cookies = append(f.Cookies, c)
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cookie jar: %w", err)
	}
	// SECURITY: session cookies are credentials
	if err := util.AtomicWriteFile(j.path, data, 0600); err != nil {
		return fmt.Errorf("write cookie jar: %w", err)
	}
	j.dirty = false
	return nil
}

// Clear forgets every cookie and removes the persisted file.
func (j *Jar) Clear() error {
	inner, _ := cookiejar.New(nil)

	j.mu.Lock()
	defer j.mu.Unlock()
	j.inner = inner
	j.cookies = make(map[string]*http.Cookie)
	j.dirty = false

	if j.path == "" {
		return nil
	}
	if err := os.Remove(j.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove cookie jar: %w", err)
	}
	return nil
}
