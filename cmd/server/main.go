package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/avezina/signalhub/internal/adapters/http"
	wssignal "github.com/avezina/signalhub/internal/adapters/signal"
	"github.com/avezina/signalhub/internal/app"
	"github.com/avezina/signalhub/internal/auth"
	"github.com/avezina/signalhub/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	rooms := app.NewRooms()
	hub := wssignal.NewHub()
	limiter := app.NewJoinLimiter(cfg.JoinLimit, cfg.JoinInterval)
	gateway := app.NewGateway(rooms, hub, limiter)
	controller := wssignal.NewController(gateway, hub, cfg)

	accounts := auth.NewService(auth.NewMemoryStore(), cfg.BcryptCost)
	authHandler := &router.AuthHandler{Auth: accounts}

	r := router.SetupRouter(ctx, cfg, controller, rooms, authHandler)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("signalhub server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
