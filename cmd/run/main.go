package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zkpolls/zkpolls-backend/internal/app"
	"github.com/zkpolls/zkpolls-backend/internal/config"
	"github.com/zkpolls/zkpolls-backend/utils"
)

func main() {
	cfg := config.Load("config/local.yaml")

	log := utils.New(cfg.Env)

	log.Info("starting zkpolls backend", slog.String("env", cfg.Env), slog.Int("port", cfg.HTTP.Port))

	application := app.NewApp(log, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application.Sweeper.Start()

	go func() {
		if err := application.HTTPServer.Run(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Info("HTTP server closed gracefully")
			} else {
				log.Error("failed to run HTTP server", utils.Err(err))
				os.Exit(1)
			}
		}
	}()

	<-ctx.Done()

	log.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := application.Stop(shutdownCtx); err != nil {
		log.Error("failed to stop application", utils.Err(err))
		os.Exit(1)
	}

	log.Info("application stopped")
}
