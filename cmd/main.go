package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/ukydev/vehicle-viewer/internal/api"
	"github.com/ukydev/vehicle-viewer/internal/config"
	"github.com/ukydev/vehicle-viewer/internal/logging"
	"github.com/ukydev/vehicle-viewer/internal/shell"
)

// newServer builds the front-end server for cfg.
func newServer(cfg *config.Config, logger *logrus.Logger) *http.Server {
	client := api.NewClient(cfg.API, logger)
	return &http.Server{
		Addr:              cfg.App.Addr,
		Handler:           shell.New(client, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	logger := logging.New(cfg.Log)

	srv := newServer(cfg, logger)
	go func() {
		logger.WithFields(logrus.Fields{
			"addr":         cfg.App.Addr,
			"api_base_url": cfg.API.BaseURL,
		}).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("HTTP server shutdown failed")
	}
}
