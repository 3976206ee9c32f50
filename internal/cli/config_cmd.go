// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Inspect and edit the configuration file.
//
// Command: config [subcommand]
//
// Subcommands:
//   show (default)      Show every setting
//   get KEY             Print one setting (dot notation, e.g. chat.mode)
//   set KEY VALUE       Change one setting and save
//   path                Print the config file path
//   reset               Restore the defaults

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/jeranaias/talentdesk/internal/config"
	"github.com/jeranaias/talentdesk/internal/ui/styles"
)

// HandleConfig handles the "config" command.
func HandleConfig(args Args) error {
	p := args.Parser()
	switch sub := p.Subcommand(); sub {
	case "", "show":
		cfg, err := loadConfigForEdit()
		if err != nil {
			return err
		}
		return showConfig(os.Stdout, cfg)

	case "get":
		key := p.Positional(1)
		if key == "" {
			return usageErrorf("talentdesk config get chat.mode", "missing key")
		}
		cfg, err := loadConfigForEdit()
		if err != nil {
			return err
		}
		v, err := cfg.Get(key)
		if err != nil {
			return usageErrorf("talentdesk config show", "%v", err)
		}
		fmt.Println(v)
		return nil

	case "set":
		key, value := p.Positional(1), JoinPositionalArgs(p, 2)
		if key == "" || value == "" {
			return usageErrorf("talentdesk config set chat.mode local", "usage: config set KEY VALUE")
		}
		cfg, err := loadConfigForEdit()
		if err != nil {
			return err
		}
		return setConfig(cfg, key, value, args.Quiet)

	case "path":
		path, err := config.ConfigPathTOML()
		if err != nil {
			return &ConfigError{Err: err}
		}
		fmt.Println(path)
		return nil

	case "reset":
		if err := config.Save(config.Default()); err != nil {
			return &ConfigError{Err: err}
		}
		printDone(os.Stderr, args, "Configuration reset to defaults")
		return nil

	default:
		return usageErrorf("talentdesk config show", "unknown subcommand %q", sub)
	}
}

// loadConfigForEdit loads the TOML file without environment overrides so a
// save does not persist them.
func loadConfigForEdit() (*config.Config, error) {
	cfg := config.Default()
	path, err := config.ConfigPathTOML()
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	if _, statErr := os.Stat(path); statErr != nil {
		return cfg, nil
	}
	if err := config.LoadTOML(cfg, path); err != nil {
		return nil, &ConfigError{Err: err}
	}
	return cfg, nil
}

// setConfig applies one change, validates the result and saves it.
func setConfig(cfg *config.Config, key, value string, quiet bool) error {
	if err := cfg.Set(key, value); err != nil {
		return usageErrorf("talentdesk config show", "%v", err)
	}
	if err := cfg.Validate(); err != nil {
		return &ConfigError{Err: err}
	}
	if err := config.Save(cfg); err != nil {
		return &ConfigError{Err: err}
	}
	if !quiet {
		fmt.Fprintln(os.Stderr, styles.RenderSuccess(fmt.Sprintf("%s = %s", key, value)))
	}
	return nil
}

// showConfig prints every key with its current value.
func showConfig(w io.Writer, cfg *config.Config) error {
	fmt.Fprintln(w, TitleStyle.Render("Configuration"))
	for _, key := range config.GetAllKeys() {
		v, err := cfg.Get(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s %s\n", RenderLabel(key), ValueStyle.Render(fmt.Sprint(v)))
	}
	return nil
}
