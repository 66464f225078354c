// Command server runs the web forms relay as a standalone HTTP server.
package main

import (
	"context"
	"os"

	"github.com/eyetechsecurities/webforms/internal/app"
	"github.com/eyetechsecurities/webforms/pkg/httpserver"
	"github.com/eyetechsecurities/webforms/pkg/logger"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		logger.New().Error("failed to load config", logger.Error(err))
		os.Exit(1)
	}

	log := app.NewLogger(cfg, os.Stdout)
	logger.SetAsDefault(log)

	ctx := context.Background()
	h, err := app.New(ctx, cfg, log)
	if err != nil {
		log.ErrorContext(ctx, "failed to build app", logger.Error(err))
		os.Exit(1)
	}

	srv := httpserver.New(cfg.HTTP, httpserver.WithLogger(log))
	if err := srv.Run(ctx, h); err != nil {
		log.ErrorContext(ctx, "server stopped", logger.Error(err))
		os.Exit(1)
	}
}
