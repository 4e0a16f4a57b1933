// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package present renders a proposed plan in the terminal and collects the
// user's confirm/cancel decision.
package present

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"github.com/peterh/liner"
	"golang.org/x/term"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"})

	bodyStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	noteStyle = lipgloss.NewStyle().
			Faint(true)
)

// bodyWidth is the wrap width for the plan body.
const bodyWidth = 76

// =============================================================================
// TERMINAL PRESENTER
// =============================================================================

// TerminalPresenter presents a plan on the terminal and reads a single y/n
// decision. It invokes exactly one of the two callbacks exactly once.
type TerminalPresenter struct {
	out io.Writer

	// autoConfirm skips the prompt and confirms immediately (--yes)
	autoConfirm bool

	// isTerminal overrides TTY detection in tests
	isTerminal func() bool

	// prompt overrides the liner prompt in tests
	prompt func(label string) (string, error)
}

// NewTerminalPresenter creates a presenter writing to out.
func NewTerminalPresenter(out io.Writer, autoConfirm bool) *TerminalPresenter {
	return &TerminalPresenter{
		out:         out,
		autoConfirm: autoConfirm,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

// Present renders the plan and routes the decision to exactly one callback.
// It performs no session mutation itself; all of that lives in the callbacks.
func (p *TerminalPresenter) Present(title, body string, onConfirm, onCancel func()) {
	plain := termenv.EnvColorProfile() == termenv.Ascii

	render := func(style lipgloss.Style, s string) string {
		if plain {
			return s
		}
		return style.Render(s)
	}

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, render(titleStyle, title))
	fmt.Fprintln(p.out, render(bodyStyle, Wrap(strings.TrimRight(body, "\n"), bodyWidth)))
	fmt.Fprintln(p.out)

	if p.autoConfirm {
		fmt.Fprintln(p.out, render(noteStyle, "Auto-confirmed (--yes)."))
		onConfirm()
		return
	}

	if !p.isTerminal() {
		fmt.Fprintln(p.out, render(noteStyle, "Not a terminal; cancelling. Pass --yes to run non-interactively."))
		onCancel()
		return
	}

	answer, err := p.readAnswer("Proceed with this plan? [y/N] ")
	if err != nil || !Affirmative(answer) {
		onCancel()
		return
	}
	onConfirm()
}

// readAnswer reads one line from the terminal.
func (p *TerminalPresenter) readAnswer(label string) (string, error) {
	if p.prompt != nil {
		return p.prompt(label)
	}

	l := liner.NewLiner()
	defer l.Close()
	l.SetCtrlCAborts(true)

	return l.Prompt(label)
}

// Affirmative reports whether a typed answer means "yes".
func Affirmative(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// =============================================================================
// WRAPPING
// =============================================================================

// Wrap word-wraps text to the given display width, accounting for
// double-width characters. Existing line breaks are preserved.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		out = append(out, wrapLine(line, width)...)
	}
	return strings.Join(out, "\n")
}

// wrapLine wraps a single line at word boundaries.
func wrapLine(line string, width int) []string {
	if runewidth.StringWidth(line) <= width {
		return []string{line}
	}

	var lines []string
	var cur strings.Builder
	curWidth := 0

	for _, word := range strings.Fields(line) {
		w := runewidth.StringWidth(word)
		if curWidth > 0 && curWidth+1+w > width {
			lines = append(lines, cur.String())
			cur.Reset()
			curWidth = 0
		}
		if curWidth > 0 {
			cur.WriteByte(' ')
			curWidth++
		}
		cur.WriteString(word)
		curWidth += w
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}
