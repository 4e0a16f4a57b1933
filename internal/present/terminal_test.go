// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package present

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestAffirmative(t *testing.T) {
	yes := []string{"y", "Y", "yes", "YES", " yes "}
	no := []string{"", "n", "no", "nope", "q", "maybe"}

	for _, s := range yes {
		if !Affirmative(s) {
			t.Errorf("Affirmative(%q) = false, want true", s)
		}
	}
	for _, s := range no {
		if Affirmative(s) {
			t.Errorf("Affirmative(%q) = true, want false", s)
		}
	}
}

func TestPresentAutoConfirm(t *testing.T) {
	var out bytes.Buffer
	p := NewTerminalPresenter(&out, true)

	var confirmed, cancelled int
	p.Present("Plan", "1. Do it\n", func() { confirmed++ }, func() { cancelled++ })

	if confirmed != 1 || cancelled != 0 {
		t.Errorf("confirmed=%d cancelled=%d", confirmed, cancelled)
	}
	if !strings.Contains(out.String(), "1. Do it") {
		t.Errorf("plan body not rendered: %q", out.String())
	}
}

func TestPresentNonTerminalCancels(t *testing.T) {
	var out bytes.Buffer
	p := NewTerminalPresenter(&out, false)
	p.isTerminal = func() bool { return false }

	var confirmed, cancelled int
	p.Present("Plan", "1. Do it\n", func() { confirmed++ }, func() { cancelled++ })

	if confirmed != 0 || cancelled != 1 {
		t.Errorf("confirmed=%d cancelled=%d", confirmed, cancelled)
	}
}

func TestPresentPromptDecision(t *testing.T) {
	tests := []struct {
		answer  string
		err     error
		confirm bool
	}{
		{"y", nil, true},
		{"yes", nil, true},
		{"n", nil, false},
		{"", nil, false},
		{"", errors.New("prompt aborted"), false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		p := NewTerminalPresenter(&out, false)
		p.isTerminal = func() bool { return true }
		p.prompt = func(string) (string, error) { return tt.answer, tt.err }

		var confirmed, cancelled int
		p.Present("Plan", "body", func() { confirmed++ }, func() { cancelled++ })

		if tt.confirm && (confirmed != 1 || cancelled != 0) {
			t.Errorf("answer %q: confirmed=%d cancelled=%d, want confirm", tt.answer, confirmed, cancelled)
		}
		if !tt.confirm && (confirmed != 0 || cancelled != 1) {
			t.Errorf("answer %q: confirmed=%d cancelled=%d, want cancel", tt.answer, confirmed, cancelled)
		}
	}
}

func TestWrap(t *testing.T) {
	got := Wrap("one two three four five", 9)
	want := "one two\nthree\nfour five"
	if got != want {
		t.Errorf("Wrap = %q, want %q", got, want)
	}

	// Existing breaks preserved; short lines untouched.
	if got := Wrap("a\nb", 10); got != "a\nb" {
		t.Errorf("Wrap short = %q", got)
	}

	// Zero width is a no-op.
	if got := Wrap("anything at all", 0); got != "anything at all" {
		t.Errorf("Wrap zero-width = %q", got)
	}
}
