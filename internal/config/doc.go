// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for rigrun-agent.
//
// Supports TOML configuration with sensible defaults, environment variable
// overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.rigrun/agent.toml
//   - Built-in defaults
//
// Environment overrides use the RIGRUN_AGENT_ prefix, e.g.
// RIGRUN_AGENT_MODEL and RIGRUN_AGENT_BASE_URL.
package config
