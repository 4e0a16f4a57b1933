// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tools declares the capability registry a step-execution engine
// dispatches into.
package tools

// =============================================================================
// RISK LEVELS
// =============================================================================

// RiskLevel indicates how dangerous a capability is.
type RiskLevel int

const (
	// RiskLow - Read-only operations, no side effects
	RiskLow RiskLevel = iota

	// RiskMedium - May modify files but can be undone
	RiskMedium

	// RiskHigh - Modifies files, harder to undo
	RiskHigh

	// RiskCritical - System commands, potentially destructive
	RiskCritical
)

// String returns the string representation of a risk level.
func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "Low"
	case RiskMedium:
		return "Medium"
	case RiskHigh:
		return "High"
	case RiskCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// =============================================================================
// PERMISSION LEVELS
// =============================================================================

// PermissionLevel determines how capability execution would be authorized.
type PermissionLevel int

const (
	// PermissionAuto - Always allowed without prompting.
	PermissionAuto PermissionLevel = iota

	// PermissionAsk - Prompt user for permission before execution.
	PermissionAsk

	// PermissionNever - Never allowed, even with user approval.
	PermissionNever
)

// String returns the string representation of a permission level.
func (p PermissionLevel) String() string {
	switch p {
	case PermissionAuto:
		return "Auto"
	case PermissionAsk:
		return "Ask"
	case PermissionNever:
		return "Never"
	default:
		return "Unknown"
	}
}

// =============================================================================
// CAPABILITIES
// =============================================================================

// Capability describes one tool a step-execution engine could dispatch into.
type Capability struct {
	// Name is the capability identifier
	Name string

	// Description is a short human-readable summary
	Description string

	// Risk classifies how dangerous the capability is
	Risk RiskLevel

	// Permission is the authorization policy for the capability
	Permission PermissionLevel
}

// registry is the fixed list of capability identifiers. The orchestration
// core enumerates these; it never invokes one.
var registry = []Capability{
	{
		Name:        "list-directory",
		Description: "List the entries of a directory",
		Risk:        RiskLow,
		Permission:  PermissionAuto,
	},
	{
		Name:        "search-text",
		Description: "Search file contents for a pattern",
		Risk:        RiskLow,
		Permission:  PermissionAuto,
	},
	{
		Name:        "glob-match",
		Description: "Find files matching a glob pattern",
		Risk:        RiskLow,
		Permission:  PermissionAuto,
	},
	{
		Name:        "view-file",
		Description: "Read the contents of a file",
		Risk:        RiskLow,
		Permission:  PermissionAuto,
	},
	{
		Name:        "replace-text",
		Description: "Replace text within a file",
		Risk:        RiskMedium,
		Permission:  PermissionAsk,
	},
	{
		Name:        "write-file",
		Description: "Write content to a file",
		Risk:        RiskHigh,
		Permission:  PermissionAsk,
	},
	{
		Name:        "run-shell",
		Description: "Run a shell command",
		Risk:        RiskCritical,
		Permission:  PermissionAsk,
	},
}

// Registry returns the fixed capability list, in declaration order.
func Registry() []Capability {
	out := make([]Capability, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the capability with the given name.
func Lookup(name string) (Capability, bool) {
	for _, c := range registry {
		if c.Name == name {
			return c, true
		}
	}
	return Capability{}, false
}

// Names returns the capability identifiers, in declaration order.
func Names() []string {
	names := make([]string, len(registry))
	for i, c := range registry {
		names[i] = c.Name
	}
	return names
}
