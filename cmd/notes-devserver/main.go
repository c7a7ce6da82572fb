package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/idilsaglam/notes/internal/config"
	"github.com/idilsaglam/notes/internal/devserver"
	"github.com/idilsaglam/notes/internal/logging"
)

func main() {
	cfg := config.DevServerFromEnv()
	addr := flag.String("addr", cfg.Addr, "listen address (env NOTES_DEV_ADDR)")
	data := flag.String("data", cfg.DataFile, "JSON snapshot file, empty for memory only (env NOTES_DEV_DATA)")
	level := flag.String("log-level", cfg.LogLevel, "debug | info | warn | error")
	flag.Parse()

	logger, _, err := logging.Setup("", *level, os.Stderr)
	if err != nil {
		log.Fatal(err)
	}

	store, err := devserver.NewStore(*data)
	if err != nil {
		logger.WithError(err).Fatal("load store")
	}
	srv := devserver.New(store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("shutdown")
		}
	}()

	if err := srv.Start(*addr); err != nil {
		logger.WithError(err).Fatal("dev backend stopped")
	}
}
