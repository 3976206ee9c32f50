// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for talentdesk.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - ServerConfig: Chat server URL, timeout and rate limit
//   - ChatConfig: Local or remote conversation storage
//   - UploadConfig: CSV output and simulated progress settings
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (TALENTDESK_*), including a .env file
//   - ~/.talentdesk/config.toml
//   - ~/.talentdesk/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := api.NewClient(cfg.Server.BaseURL).WithTimeout(cfg.RequestTimeout())
package config
