// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the process-wide logrus logger.
//
// Interactive commands log to a file so the terminal stays clean; plain
// commands log to stderr. Packages obtain a component-scoped entry:
//
//	log := logging.For("api")
//	log.WithField("path", "/get").Debug("request")
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu   sync.RWMutex
	base = newDefault()
	file *os.File
)

// newDefault returns the logger used before Init: warnings to stderr.
func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// ParseLevel maps a config level name to a logrus level. Unknown names map
// to info.
func ParseLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Init configures the shared logger. format is "text" or "json". When path
// is non-empty, output goes to that file (appended, 0600); otherwise to
// stderr. Calling Init again replaces the previous configuration.
func Init(level, format, path string) error {
	l := logrus.New()
	l.SetLevel(ParseLevel(level))

	switch strings.ToLower(format) {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: path != ""})
	}

	var out io.Writer = os.Stderr
	var f *os.File
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		var err error
		f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		out = f
	}
	l.SetOutput(out)

	mu.Lock()
	prev := file
	base = l
	file = f
	mu.Unlock()

	if prev != nil {
		prev.Close()
	}
	return nil
}

// SetOutput redirects the shared logger, mainly for tests.
func SetOutput(w io.Writer) {
	mu.RLock()
	defer mu.RUnlock()
	base.SetOutput(w)
}

// Close releases the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	base.SetOutput(os.Stderr)
	return err
}

// Logger returns the shared logger.
func Logger() *logrus.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// For returns an entry tagged with the component name.
func For(component string) *logrus.Entry {
	return Logger().WithField("component", component)
}
