// The devserver command runs an in-memory note service on localhost. It
// speaks the same REST API as the production service and exists so the CLI
// can be developed and demoed without real infrastructure.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/notezapp/notez/internal/buildinfo"
	"github.com/notezapp/notez/internal/logging"
	"github.com/notezapp/notez/internal/server/httpapi"
	"github.com/notezapp/notez/internal/server/notes"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	_ = godotenv.Load()

	addr := ":8080"
	if v, ok := os.LookupEnv("NOTEZ_DEVSERVER_ADDR"); ok {
		addr = v
	}
	flag.StringVar(&addr, "a", addr, "listen address")
	flag.Parse()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	ctx := context.Background()

	handler := httpapi.NewNoteHandler(notes.NewRepository())
	srv := &http.Server{
		Addr:    addr,
		Handler: httpapi.NewRouter(handler, log),
	}

	go func() {
		log.Info(ctx, "devserver listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "shutdown failed", "error", err)
	}
	log.Info(ctx, "devserver stopped")
}
