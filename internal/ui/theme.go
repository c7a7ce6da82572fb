package ui

import (
	"sort"
	"strings"
)

// Border is the frame drawn around a panel.
type Border struct {
	TL, TR, BL, BR string
	H, V           string
}

// Theme bundles palette, action-item marks and the panel border.
// All UI helpers pull from `current`.
type Theme struct {
	Name                                          string
	Title, Muted, Accent, Success, Error, Pending string

	// Marks shown next to an action item, by state.
	Open, Done string
	// Short forms used in the action panel's counters.
	OpenSym, DoneSym string

	Border Border

	// Plain themes never emit escape codes, whatever the terminal.
	Plain bool
}

var themes = map[string]Theme{
	"classic": {
		Name:  "classic",
		Title: bold, Muted: fgGray, Accent: fgBlue,
		Success: fgGreen, Error: fgRed, Pending: fgYellow,
		Open: "☐", Done: "☑",
		OpenSym: "•", DoneSym: "✔",
		Border: Border{TL: "┌", TR: "┐", BL: "└", BR: "┘", H: "─", V: "│"},
	},
	"neon": {
		Name:  "neon",
		Title: "\033[95m", // bright magenta
		Muted: fgGray, Accent: "\033[96m",
		Success: fgGreen, Error: fgRed, Pending: "\033[93m",
		Open: "◻", Done: "◼",
		OpenSym: "•", DoneSym: "✔",
		Border: Border{TL: "╭", TR: "╮", BL: "╰", BR: "╯", H: "─", V: "│"},
	},
	"mono": {
		Name: "mono",
		Open: "[ ]", Done: "[x]",
		OpenSym: "-", DoneSym: "x",
		Border: Border{TL: "+", TR: "+", BL: "+", BR: "+", H: "-", V: "|"},
		Plain:  true,
	},
}

var current Theme

func init() { SetTheme("classic") }

// SetTheme switches palette and marks. Unknown names fall back to classic.
func SetTheme(name string) {
	t, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		t = themes["classic"]
	}
	current = t
}

// Themes lists the names SetTheme understands.
func Themes() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Current is the active theme.
func Current() Theme { return current }

// Mark is the themed, colored marker for an action item in the given state.
func Mark(done bool) string {
	if done {
		return C(current.Success, current.Done)
	}
	return C(current.Muted, current.Open)
}
