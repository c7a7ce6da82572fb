package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/idilsaglam/notes/internal/tui"
	"github.com/idilsaglam/notes/internal/ui"
	"github.com/idilsaglam/notes/internal/view"
)

// Options tune output behavior from root flags.
type Options struct {
	Group   bool // list action items grouped by open/done
	Backend view.Backend
	Logger  *log.Logger
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	if opt.Logger == nil {
		opt.Logger = log.StandardLogger()
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "ui":
		if err := tui.Run(ctx, opt.Backend, opt.Logger); err != nil {
			ui.Fail("ui: " + err.Error())
			return 1
		}
		return 0

	case "notes":
		return runNotes(ctx, a, opt)

	case "actions":
		return runActions(ctx, a, opt)
	}

	ui.Fail("unknown subcommand: " + cmd)
	ui.Hint("")
	PrintHelp()
	return 2
}

func PrintHelp() {
	ui.Print(`notes - a tiny client for the notes & action-items service

Usage:
  notes [flags] <subcommand> [args]

Subcommands:
  ui                              Interactive two-pane UI
  notes [ls]                      List notes
  notes search <query...>         List notes matching query
  notes add <title> <content...>  Create a note
  actions [ls]                    List action items
  actions add <description...>    Create an action item
  actions done <id>               Mark action item <id> complete

Examples:
  notes notes add "Groceries" "milk, eggs"
  notes notes search milk
  notes actions add "Call the plumber"
  notes actions done 3
`)
}

// -------------- subcommand impls ----------------

func runNotes(ctx context.Context, a []string, opt Options) int {
	sub := "ls"
	if len(a) > 0 {
		sub, a = a[0], a[1:]
	}
	out := &capture{}
	ctl := view.NewController(opt.Backend, out, view.ListFunc(func([]view.Entry) {}), opt.Logger)

	switch sub {
	case "ls":
		if err := ctl.LoadNotes(ctx); err != nil {
			ui.Fail(err.Error())
			return 1
		}
		printNotes("Notes", out.entries)
		return 0

	case "search":
		if len(a) == 0 {
			ui.Fail("usage: notes notes search <query...>")
			return 2
		}
		q := strings.Join(a, " ")
		if strings.TrimSpace(q) == "" {
			ui.Fail("search: empty query")
			return 2
		}
		if err := ctl.Search(ctx, argQuery(q)); err != nil {
			ui.Fail(err.Error())
			return 1
		}
		printNotes(fmt.Sprintf("Notes matching %q", q), out.entries)
		return 0

	case "add":
		if len(a) < 2 {
			ui.Fail("usage: notes notes add <title> <content...>")
			return 2
		}
		f := &argNote{title: a[0], content: strings.Join(a[1:], " ")}
		if err := ctl.SubmitNote(ctx, f); err != nil {
			ui.Fail(err.Error())
			return 1
		}
		ui.OK("note added")
		printNotes("Notes", out.entries)
		return 0
	}

	ui.Fail("unknown notes subcommand: " + sub)
	return 2
}

func runActions(ctx context.Context, a []string, opt Options) int {
	sub := "ls"
	if len(a) > 0 {
		sub, a = a[0], a[1:]
	}
	out := &capture{}
	ctl := view.NewController(opt.Backend, view.ListFunc(func([]view.Entry) {}), out, opt.Logger)

	switch sub {
	case "ls":
		if err := ctl.LoadActions(ctx); err != nil {
			ui.Fail(err.Error())
			return 1
		}
		printActions(out.entries, opt)
		return 0

	case "add":
		if len(a) == 0 {
			ui.Fail("usage: notes actions add <description...>")
			return 2
		}
		f := &argAction{desc: strings.Join(a, " ")}
		if err := ctl.SubmitAction(ctx, f); err != nil {
			ui.Fail(err.Error())
			return 1
		}
		ui.OK("action item added")
		printActions(out.entries, opt)
		return 0

	case "done":
		if len(a) != 1 {
			ui.Fail("usage: notes actions done <id>")
			return 2
		}
		id, err := strconv.ParseInt(a[0], 10, 64)
		if err != nil {
			ui.Fail("done: not a number: " + a[0])
			return 2
		}
		if err := ctl.CompleteAction(ctx, id); err != nil {
			ui.Fail(err.Error())
			ui.Hint("Hint: run `notes actions ls` to see valid ids")
			return 1
		}
		ui.OK("completed")
		printActions(out.entries, opt)
		return 0
	}

	ui.Fail("unknown actions subcommand: " + sub)
	return 2
}

// -------------- handles for one-shot commands --------------

// capture keeps the last projection written by the controller.
type capture struct{ entries []view.Entry }

func (c *capture) Replace(e []view.Entry) { c.entries = e }

type argNote struct{ title, content string }

func (f *argNote) Title() string   { return f.title }
func (f *argNote) Content() string { return f.content }
func (f *argNote) Reset()          { *f = argNote{} }

type argAction struct{ desc string }

func (f *argAction) Description() string { return f.desc }
func (f *argAction) Reset()              { f.desc = "" }

type argQuery string

func (q argQuery) Query() string { return string(q) }
func (q argQuery) Clear()        {}
