package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/notezapp/notez/internal/buildinfo"
	"github.com/notezapp/notez/internal/client/cli"
	"github.com/notezapp/notez/internal/client/config"
	"github.com/notezapp/notez/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app, err := cli.NewApp(cfg, log)
	if err != nil {
		log.Error(ctx, "failed to start", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)

}
