// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/talentdesk/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete talentdesk configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Server connection
	Server ServerConfig `toml:"server" json:"server"`

	// Chat storage and mode
	Chat ChatConfig `toml:"chat" json:"chat"`

	// Resume upload
	Upload UploadConfig `toml:"upload" json:"upload"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// Logging
	Log LogConfig `toml:"log" json:"log"`
}

// ServerConfig describes the chat server.
type ServerConfig struct {
	// BaseURL is the server root, e.g. http://localhost:5000
	BaseURL string `toml:"base_url" json:"base_url"`
	// RequestTimeoutSecs bounds every HTTP exchange
	RequestTimeoutSecs int `toml:"request_timeout_secs" json:"request_timeout_secs"`
	// RequestsPerSecond rate limits the client (0 = unlimited)
	RequestsPerSecond float64 `toml:"requests_per_second" json:"requests_per_second"`
}

// ChatConfig selects where conversations live.
type ChatConfig struct {
	// Mode is "local" (client-side history) or "remote" (server history)
	Mode string `toml:"mode" json:"mode"`
	// LocalBackend is the local blob store: "sqlite", "file", or "memory"
	LocalBackend string `toml:"local_backend" json:"local_backend"`
	// LocalPath overrides the local store location
	LocalPath string `toml:"local_path" json:"local_path"`
	// Watch reloads the sidebar when another process changes local history
	Watch bool `toml:"watch" json:"watch"`
}

// UploadConfig contains resume upload settings.
type UploadConfig struct {
	// OutputDir receives CSV exports and HTML reports
	OutputDir string `toml:"output_dir" json:"output_dir"`
	// ProgressStep is the simulated progress increment (percent)
	ProgressStep int `toml:"progress_step" json:"progress_step"`
	// ProgressIntervalMs is the simulated progress tick
	ProgressIntervalMs int `toml:"progress_interval_ms" json:"progress_interval_ms"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// Markdown renders bot replies with glamour
	Markdown bool `toml:"markdown" json:"markdown"`
	// ShowSidebar shows the conversation list next to the messages
	ShowSidebar bool `toml:"show_sidebar" json:"show_sidebar"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error
	Level string `toml:"level" json:"level"`
	// Format is "text" or "json"
	Format string `toml:"format" json:"format"`
	// File is the log file; empty logs to talentdesk.log in the config dir
	File string `toml:"file" json:"file"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Server: ServerConfig{
			BaseURL:            "http://localhost:5000",
			RequestTimeoutSecs: 60,
			RequestsPerSecond:  0,
		},

		Chat: ChatConfig{
			Mode:         "remote",
			LocalBackend: "sqlite",
			Watch:        true,
		},

		Upload: UploadConfig{
			OutputDir:          ".",
			ProgressStep:       5,
			ProgressIntervalMs: 300,
		},

		UI: UIConfig{
			Theme:       "dark",
			Markdown:    true,
			ShowSidebar: true,
		},

		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// HomeEnv overrides the configuration directory.
const HomeEnv = "TALENTDESK_HOME"

// ConfigDir returns the talentdesk configuration directory path.
func ConfigDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".talentdesk"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// SessionPath returns where the server session cookie is kept.
func (c *Config) SessionPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "session.json"), nil
}

// HistoryPath returns the local conversation store location: a database
// file for the sqlite backend, a directory for the file backend.
func (c *Config) HistoryPath() (string, error) {
	if c.Chat.LocalPath != "" {
		return c.Chat.LocalPath, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	if c.Chat.LocalBackend == "file" {
		return filepath.Join(dir, "history"), nil
	}
	return filepath.Join(dir, "history.db"), nil
}

// LogPath returns the log file path.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "talentdesk.log"), nil
}

// RequestTimeout returns the server timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutSecs) * time.Second
}

// ProgressInterval returns the simulated progress tick as a duration.
func (c *Config) ProgressInterval() time.Duration {
	return time.Duration(c.Upload.ProgressIntervalMs) * time.Millisecond
}

// ensureSecurePermissions checks and fixes permissions on config files.
// SECURITY: Config files should be 0600 (owner read/write only).
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	mode := info.Mode().Perm()
	if mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}

	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// LoadDotEnv loads a .env file from the working directory into the process
// environment. A missing file is not an error; existing variables win.
func LoadDotEnv() error {
	err := godotenv.Load()
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	if tomlPath, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finish(cfg)
			}
		}
	}

	if jsonPath, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
			} else {
				return finish(cfg)
			}
		}
	}

	cfg = Default()
	cfg, err := finish(cfg)
	if err != nil {
		return nil, err
	}
	// Defaults, with any load error for informational purposes
	return cfg, loadErr
}

// finish applies environment overrides and validates.
func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
// SECURITY: Checks and fixes file permissions on load.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// LoadJSON loads configuration from a JSON file.
// SECURITY: Checks and fixes file permissions on load.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finish(cfg)
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}

	// Server
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = defaults.Server.BaseURL
	}
	if cfg.Server.RequestTimeoutSecs == 0 {
		cfg.Server.RequestTimeoutSecs = defaults.Server.RequestTimeoutSecs
	}

	// Chat
	if cfg.Chat.Mode == "" {
		cfg.Chat.Mode = defaults.Chat.Mode
	}
	if cfg.Chat.LocalBackend == "" {
		cfg.Chat.LocalBackend = defaults.Chat.LocalBackend
	}

	// Upload
	if cfg.Upload.OutputDir == "" {
		cfg.Upload.OutputDir = defaults.Upload.OutputDir
	}
	if cfg.Upload.ProgressStep == 0 {
		cfg.Upload.ProgressStep = defaults.Upload.ProgressStep
	}
	if cfg.Upload.ProgressIntervalMs == 0 {
		cfg.Upload.ProgressIntervalMs = defaults.Upload.ProgressIntervalMs
	}

	// UI
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}

	// Log
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = defaults.Log.Format
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
// SECURITY: Creates config files with 0600 permissions (owner read/write only).
// RELIABILITY: Atomic write with fsync prevents data loss on crash
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# talentdesk configuration file")
	fmt.Fprintln(&buf, "# Generated by talentdesk - edit with care")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// ==========================================================================
	// Server
	// ==========================================================================

	if u, err := url.Parse(c.Server.BaseURL); err != nil || u.Host == "" ||
		(u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, ValidationError{
			Field:   "server.base_url",
			Message: fmt.Sprintf("invalid URL '%s', must be http(s)://host[:port]", c.Server.BaseURL),
		})
	}
	if c.Server.RequestTimeoutSecs < 1 || c.Server.RequestTimeoutSecs > 600 {
		errs = append(errs, ValidationError{
			Field:   "server.request_timeout_secs",
			Message: fmt.Sprintf("must be between 1 and 600, got %d", c.Server.RequestTimeoutSecs),
		})
	}
	if c.Server.RequestsPerSecond < 0 {
		errs = append(errs, ValidationError{
			Field:   "server.requests_per_second",
			Message: "must not be negative",
		})
	}

	// ==========================================================================
	// Chat
	// ==========================================================================

	validModes := map[string]bool{"local": true, "remote": true}
	if !validModes[strings.ToLower(c.Chat.Mode)] {
		errs = append(errs, ValidationError{
			Field:   "chat.mode",
			Message: fmt.Sprintf("invalid mode '%s', must be one of: local, remote", c.Chat.Mode),
		})
	}
	validBackends := map[string]bool{"sqlite": true, "file": true, "memory": true}
	if !validBackends[strings.ToLower(c.Chat.LocalBackend)] {
		errs = append(errs, ValidationError{
			Field:   "chat.local_backend",
			Message: fmt.Sprintf("invalid backend '%s', must be one of: sqlite, file, memory", c.Chat.LocalBackend),
		})
	}

	// ==========================================================================
	// Upload
	// ==========================================================================

	if c.Upload.ProgressStep < 1 || c.Upload.ProgressStep > 90 {
		errs = append(errs, ValidationError{
			Field:   "upload.progress_step",
			Message: fmt.Sprintf("must be between 1 and 90, got %d", c.Upload.ProgressStep),
		})
	}
	if c.Upload.ProgressIntervalMs < 10 {
		errs = append(errs, ValidationError{
			Field:   "upload.progress_interval_ms",
			Message: fmt.Sprintf("must be at least 10, got %d", c.Upload.ProgressIntervalMs),
		})
	}

	// ==========================================================================
	// UI and logging
	// ==========================================================================

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}
	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s'", c.Log.Level),
		})
	}
	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Log.Format)] {
		errs = append(errs, ValidationError{
			Field:   "log.format",
			Message: fmt.Sprintf("invalid format '%s', must be one of: text, json", c.Log.Format),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides.
//
// Supported variables:
//   - TALENTDESK_SERVER_URL: overrides server.base_url
//   - TALENTDESK_CHAT_MODE: overrides chat.mode
//   - TALENTDESK_LOCAL_BACKEND: overrides chat.local_backend
//   - TALENTDESK_OUTPUT_DIR: overrides upload.output_dir
//   - TALENTDESK_THEME: overrides ui.theme
//   - TALENTDESK_LOG_LEVEL: overrides log.level
//   - TALENTDESK_LOG_FORMAT: overrides log.format
//   - TALENTDESK_LOG_FILE: overrides log.file
func (c *Config) ApplyEnvOverrides() {
	overrides := []struct {
		env    string
		target *string
	}{
		{"TALENTDESK_SERVER_URL", &c.Server.BaseURL},
		{"TALENTDESK_CHAT_MODE", &c.Chat.Mode},
		{"TALENTDESK_LOCAL_BACKEND", &c.Chat.LocalBackend},
		{"TALENTDESK_OUTPUT_DIR", &c.Upload.OutputDir},
		{"TALENTDESK_THEME", &c.UI.Theme},
		{"TALENTDESK_LOG_LEVEL", &c.Log.Level},
		{"TALENTDESK_LOG_FORMAT", &c.Log.Format},
		{"TALENTDESK_LOG_FILE", &c.Log.File},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.target = v
		}
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "chat.mode").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "chat.mode").
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

// lookup walks the dotted key down the struct tree.
func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			lower := strings.ToLower(strVal)
			field.SetBool(strVal == "1" || lower == "true" || lower == "yes")
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"server.base_url",
		"server.request_timeout_secs",
		"server.requests_per_second",
		"chat.mode",
		"chat.local_backend",
		"chat.local_path",
		"chat.watch",
		"upload.output_dir",
		"upload.progress_step",
		"upload.progress_interval_ms",
		"ui.theme",
		"ui.markdown",
		"ui.show_sidebar",
		"log.level",
		"log.format",
		"log.file",
	}
}
