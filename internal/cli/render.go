package cli

import (
	"fmt"

	"github.com/idilsaglam/notes/internal/ui"
	"github.com/idilsaglam/notes/internal/view"
)

// -------------- rendering helpers --------------

func printNotes(title string, entries []view.Entry) {
	t := ui.Current()
	var lines []string
	for i, e := range entries {
		if e.Placeholder {
			lines = append(lines, ui.C(t.Muted, e.Text))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s", ui.C(t.Muted, fmt.Sprintf("%2d.", i+1)), clip(e.Text)))
	}
	ui.Panel(title, lines)
}

func printActions(entries []view.Entry, opt Options) {
	t := ui.Current()
	d, p := stats(entries)
	header := fmt.Sprintf("%s %d  %s %d  %s %d",
		ui.C(t.Success, t.DoneSym), d,
		ui.C(t.Pending, t.OpenSym), p,
		ui.C(t.Accent, "Total"), len(entries),
	)

	lines := []string{header, ui.C(t.Muted, ui.ProgressBar(d, d+p, 28)), ""}
	if opt.Group {
		lines = append(lines, groupLines(entries)...)
	} else {
		lines = append(lines, flatLines(entries)...)
	}
	lines = append(lines, "", ui.C(t.Muted, "Tip: complete with `notes actions done <id>`"))
	ui.Panel("Action items", lines)
}

func stats(entries []view.Entry) (done, pending int) {
	for _, e := range entries {
		if e.Done {
			done++
		} else {
			pending++
		}
	}
	return
}

func flatLines(entries []view.Entry) []string {
	t := ui.Current()
	if len(entries) == 0 {
		return []string{ui.C(t.Muted, "no items")}
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, fmt.Sprintf("%s %s %s",
			ui.C(t.Muted, fmt.Sprintf("#%-3d", e.ItemID)), ui.Mark(e.Done), clip(e.Text)))
	}
	return out
}

func groupLines(entries []view.Entry) []string {
	t := ui.Current()
	var open, done []view.Entry
	for _, e := range entries {
		if e.Done {
			done = append(done, e)
		} else {
			open = append(open, e)
		}
	}
	var lines []string
	lines = append(lines, ui.C(t.Accent, "Open"))
	if len(open) == 0 {
		lines = append(lines, ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(open)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Accent, "Done"))
	if len(done) == 0 {
		lines = append(lines, ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}

func clip(s string) string {
	r := []rune(s)
	if len(r) > 80 {
		return string(r[:77]) + "..."
	}
	return s
}
