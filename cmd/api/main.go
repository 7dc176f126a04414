//	@title			imgstore API
//	@version		1.0
//	@description	Uploads images, optionally re-encodes them, and stores them in an S3-compatible bucket under content-addressed keys.
//
//	@host		localhost:5005
//	@BasePath	/

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/k1r/imgstore/internal/config"
	"github.com/k1r/imgstore/internal/content"
	"github.com/k1r/imgstore/internal/logger"
	"github.com/k1r/imgstore/internal/storage"
	"github.com/k1r/imgstore/internal/upload"
	"github.com/k1r/imgstore/internal/web"

	_ "github.com/k1r/imgstore/docs/swagger"
)

func main() {
	boot := zerolog.New(os.Stderr).With().Timestamp().Str("service", "imgstore").Logger()

	cfg, err := config.Load()
	if err != nil {
		var missing *config.MissingError
		if errors.As(err, &missing) {
			boot.Fatal().Strs("missing", missing.Vars).Msg(err.Error())
		}
		boot.Fatal().Err(err).Msg("load config")
	}

	log, err := logger.New("imgstore", cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		boot.Fatal().Err(err).Msg("init logger")
	}

	initCtx, cancelInit := context.WithTimeout(context.Background(), cfg.StorageTimeout)
	store, err := storage.New(initCtx, cfg, log)
	cancelInit()
	if err != nil {
		log.Fatal().Err(err).Msg("object storage init failed")
	}

	// Wire dependencies: store → service → handler
	uploadSvc := upload.NewService(store, content.NewPaths(cfg.PublicDomain), cfg.MaxUploadBytes(), cfg.StorageTimeout, log)
	uploadHandler := upload.NewHandler(uploadSvc, log)

	index, err := web.Index(cfg.MaxUploadMB)
	if err != nil {
		log.Fatal().Err(err).Msg("landing page init failed")
	}

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     newRouter(log, uploadHandler, index),
		ReadTimeout: 60 * time.Second,
		// Covers a full-size upload, transcode and one bounded store call.
		WriteTimeout: cfg.StorageTimeout + 60*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Str("driver", cfg.StorageDriver).Msg("server listening")
		if !cfg.IsProduction() {
			log.Info().Msgf("swagger UI at http://localhost:%s/swagger/", cfg.Port)
		}
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-quit
	log.Info().Msg("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("server stopped")
}
