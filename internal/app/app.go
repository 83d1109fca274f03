package app

import (
	"context"
	"log/slog"

	"github.com/zkpolls/zkpolls-backend/internal/app/http"
	"github.com/zkpolls/zkpolls-backend/internal/config"
	"github.com/zkpolls/zkpolls-backend/internal/handlers"
	"github.com/zkpolls/zkpolls-backend/internal/ledger"
	"github.com/zkpolls/zkpolls-backend/internal/media"
	"github.com/zkpolls/zkpolls-backend/internal/middleware"
	"github.com/zkpolls/zkpolls-backend/internal/scheduler"
	"github.com/zkpolls/zkpolls-backend/internal/services"
	"github.com/zkpolls/zkpolls-backend/internal/storage/postgres"
	"github.com/zkpolls/zkpolls-backend/internal/verifier"
)

type App struct {
	HTTPServer *http.App
	Sweeper    *scheduler.Sweeper
	Polls      *services.Polls
	Auth       *services.Auth

	storage *postgres.Storage
}

func NewApp(log *slog.Logger, cfg *config.Config) *App {
	storage, err := postgres.New(cfg.StoragePath)
	if err != nil {
		panic(err)
	}

	mediaStore, err := media.New(context.Background(), cfg.Media)
	if err != nil {
		panic(err)
	}

	// Optional collaborators. An absent verifier makes anonymous votes fail
	// hard rather than pass unchecked; an absent ledger just skips the
	// on-chain merge.
	var proofVerifier services.ProofVerifier
	if cfg.Verifier.Address != "" {
		proofVerifier = verifier.NewClient(cfg.Verifier.Address, cfg.Verifier.Timeout)
	}
	var ledgerReader services.LedgerReader
	if cfg.Ledger.Address != "" {
		ledgerReader = ledger.NewClient(cfg.Ledger.Address, cfg.Ledger.Timeout)
	}

	authService := services.NewAuth(log, storage, cfg.Token.Secret, cfg.Token.TTL)
	pollsService := services.NewPolls(log, storage, mediaStore, proofVerifier, ledgerReader)

	authMiddleware := middleware.NewAuth(authService)

	authHandler := handlers.NewAuthHandler(authService)
	pollsHandler := handlers.NewPollsHandler(pollsService)

	httpApp := http.NewApp(
		cfg.HTTP.Port,
		cfg.CORS.AllowedOrigins,
		authHandler,
		pollsHandler,
		authMiddleware.Middleware(),
		authMiddleware.OptionalMiddleware(),
	)

	sweeper := scheduler.NewSweeper(log, storage, cfg.Sweeper.Interval)

	return &App{
		HTTPServer: httpApp,
		Sweeper:    sweeper,
		Polls:      pollsService,
		Auth:       authService,
		storage:    storage,
	}
}

func (a *App) Stop(ctx context.Context) error {
	a.Sweeper.Stop()
	if err := a.HTTPServer.Stop(ctx); err != nil {
		return err
	}
	return a.storage.Close()
}
