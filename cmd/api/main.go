// @title           Social Media API
// @version         1.0
// @description     Account registration, login and message CRUD.
// @host            localhost:8080
// @BasePath        /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Socialmedia/internal/app"
	"Socialmedia/internal/config"
	"Socialmedia/internal/logger"

	_ "Socialmedia/docs"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New(true, "info")
		boot.Fatal().Err(err).Msg("config")
	}
	log := logger.New(cfg.App.IsDev(), cfg.App.LogLevel)
	if !cfg.App.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	log.Info().Str("store", cfg.Store.Driver).Msg("config loaded, connecting to store")

	application, err := app.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("app init")
	}
	server := newServer(cfg.HTTP, application.Router())

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown")
	}
	if err := application.Close(ctx); err != nil {
		log.Error().Err(err).Msg("app close")
	}
}

func newServer(cfg config.HTTPConfig, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout.Duration(),
		WriteTimeout: cfg.WriteTimeout.Duration(),
		IdleTimeout:  cfg.IdleTimeout.Duration(),
	}
}
