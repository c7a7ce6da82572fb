package ui

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string { return ansiRegexp.ReplaceAllString(s, "") }

func width(s string) int { return utf8.RuneCountInString(stripANSI(s)) }

// ProgressBar renders a done/total bar with percentage, e.g. completed vs
// open action items.
func ProgressBar(done, total, barWidth int) string {
	if total <= 0 {
		total = 1
	}
	if barWidth < 5 {
		barWidth = 5
	}
	filled := int(float64(done) / float64(total) * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// RenderPanel frames lines in the current theme's border. A non-empty title
// is set into the top edge: ┌─ Notes ──┐.
func RenderPanel(title string, lines []string) string {
	b := current.Border
	inner := 0
	for _, ln := range lines {
		inner = max(inner, width(ln))
	}
	if title != "" {
		inner = max(inner, width(title)+1)
	}

	var sb strings.Builder
	if title == "" {
		sb.WriteString(b.TL + strings.Repeat(b.H, inner+2) + b.TR + "\n")
	} else {
		rest := inner + 2 - width(title) - 3
		sb.WriteString(b.TL + b.H + " " + C(current.Title, title) + " " + strings.Repeat(b.H, rest) + b.TR + "\n")
	}
	for _, ln := range lines {
		sb.WriteString(b.V + " " + ln + strings.Repeat(" ", inner-width(ln)) + " " + b.V + "\n")
	}
	sb.WriteString(b.BL + strings.Repeat(b.H, inner+2) + b.BR + "\n")
	return sb.String()
}

// Panel prints RenderPanel to the panel output.
func Panel(title string, lines []string) { Print(RenderPanel(title, lines)) }
