package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/idilsaglam/notes/internal/api"
	"github.com/idilsaglam/notes/internal/cli"
	"github.com/idilsaglam/notes/internal/config"
	"github.com/idilsaglam/notes/internal/logging"
	"github.com/idilsaglam/notes/internal/ui"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		ui.Fail(err.Error())
		os.Exit(2)
	}

	// Root flags (apply to every subcommand)
	server := flag.String("server", cfg.Server, "backend base URL (env NOTES_SERVER)")
	groupOpen := flag.Bool("group", false, "group action items by open/done")
	theme := flag.String("theme", cfg.Theme, strings.Join(ui.Themes(), " | ")+" (env NOTES_THEME)")
	timeout := flag.Duration("timeout", cfg.Timeout, "per-request timeout, 0 for none (env NOTES_TIMEOUT)")
	logFile := flag.String("log-file", cfg.LogFile, "append logs to this file (env NOTES_LOG_FILE)")
	logLevel := flag.String("log-level", cfg.LogLevel, "debug | info | warn | error (env NOTES_LOG_LEVEL)")
	forceColor := flag.Bool("color", false, "force colored output")
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Parse()

	ui.SetTheme(*theme)
	ui.SetColorForcing(*forceColor, *noColor)

	// Hand the remaining args to the CLI runner; a bare terminal gets the UI.
	args := flag.Args()
	if len(args) == 0 {
		if !stdinIsTerminal() {
			cli.PrintHelp()
			os.Exit(2)
		}
		args = []string{"ui"}
	}
	interactive := args[0] == "ui"

	// The UI owns the terminal: without a log file, logs go nowhere.
	var fallback io.Writer = os.Stderr
	level := *logLevel
	if interactive {
		fallback = io.Discard
	}
	if level == "" {
		level = "info"
		if *logFile == "" && !interactive {
			level = "warn"
		}
	}
	logger, closeLog, err := logging.Setup(*logFile, level, fallback)
	if err != nil {
		ui.Fail(err.Error())
		os.Exit(2)
	}

	client, err := api.New(*server, api.WithTimeout(*timeout), api.WithLogger(logger))
	if err != nil {
		ui.Fail(err.Error())
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Run(ctx, args, cli.Options{
		Group:   *groupOpen,
		Backend: client,
		Logger:  logger,
	})
	stop()
	closeLog()
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}

func stdinIsTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
