// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// app.go - Shared command environment: config, logging, client and store.

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/talentdesk/internal/api"
	"github.com/jeranaias/talentdesk/internal/config"
	"github.com/jeranaias/talentdesk/internal/logging"
	"github.com/jeranaias/talentdesk/internal/storage"
	"github.com/jeranaias/talentdesk/internal/ui/styles"
)

// App carries what every command needs once configuration is loaded.
type App struct {
	Config *config.Config
	Client *api.Client
	Jar    *api.Jar
	Theme  *styles.Theme
}

// NewApp loads configuration, applies the global flags, starts logging and
// builds the server client with the persisted session.
//
// Logs go to the configured file so command output and TUIs stay clean;
// --verbose sends debug logs to stderr instead.
func NewApp(args Args) (*App, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("load .env: %w", err)}
	}

	cfg, err := config.Load()
	if cfg == nil {
		return nil, &ConfigError{Err: err}
	}
	loadErr := err

	if err := applyOverrides(cfg, args); err != nil {
		return nil, &ConfigError{Err: err}
	}

	if args.Verbose {
		err = logging.Init("debug", cfg.Log.Format, "")
	} else {
		var path string
		if path, err = cfg.LogPath(); err == nil {
			err = logging.Init(cfg.Log.Level, cfg.Log.Format, path)
		}
	}
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	if loadErr != nil {
		logging.For("cli").WithError(loadErr).Warn("config file ignored; using defaults")
	}

	applyColorProfile(args.NoColor)

	sessionPath, err := cfg.SessionPath()
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	jar, err := api.LoadJar(sessionPath)
	if err != nil {
		logging.For("cli").WithError(err).Warn("stored session unreadable; starting signed out")
		jar = api.NewJar(sessionPath)
	}

	client := api.NewClient(cfg.Server.BaseURL).
		WithTimeout(cfg.RequestTimeout()).
		WithRateLimit(cfg.Server.RequestsPerSecond).
		WithJar(jar)

	return &App{
		Config: cfg,
		Client: client,
		Jar:    jar,
		Theme:  styles.NewTheme(cfg.UI.Theme),
	}, nil
}

// applyOverrides copies the global flags into cfg.
func applyOverrides(cfg *config.Config, args Args) error {
	if args.Server != "" {
		cfg.Server.BaseURL = strings.TrimRight(args.Server, "/")
	}
	if args.Mode != "" {
		mode, err := storage.ParseMode(args.Mode)
		if err != nil {
			return err
		}
		cfg.Chat.Mode = string(mode)
	}
	if args.Theme != "" {
		cfg.UI.Theme = args.Theme
	}
	return cfg.Validate()
}

// Close persists the session cookie and closes the log file.
func (a *App) Close() {
	if a.Jar.Dirty() {
		if err := a.Jar.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save session: %v\n", err)
		}
	}
	logging.Close()
}

// =============================================================================
// CONVERSATION STORE
// =============================================================================

// OpenStore opens the conversation store selected by chat.mode. The
// returned close function releases local storage.
func (a *App) OpenStore() (storage.Store, func() error, error) {
	mode, err := storage.ParseMode(a.Config.Chat.Mode)
	if err != nil {
		return nil, nil, &ConfigError{Err: err}
	}
	if mode == storage.ModeRemote {
		return storage.NewRemoteStore(a.Client), func() error { return nil }, nil
	}

	blob, err := a.openBlob()
	if err != nil {
		return nil, nil, err
	}
	// Local history still takes replies from the server's legacy endpoint.
	store := storage.NewLocalStore(blob, storage.ReplierFunc(a.Client.LegacyReply))
	logging.For("cli").WithField("backend", a.Config.Chat.LocalBackend).Debug("local store opened")
	return store, store.Close, nil
}

// openBlob opens the configured local backend.
func (a *App) openBlob() (storage.Blob, error) {
	if a.Config.Chat.LocalBackend == "memory" {
		return storage.NewMemoryBlob(), nil
	}
	path, err := a.Config.HistoryPath()
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	if err := config.EnsureConfigDir(); err != nil {
		return nil, &ConfigError{Err: err}
	}
	switch a.Config.Chat.LocalBackend {
	case "file":
		return storage.OpenFileBlob(path)
	default:
		return storage.OpenSQLiteBlob(path)
	}
}
