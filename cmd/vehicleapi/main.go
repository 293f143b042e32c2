package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/ukydev/vehicle-viewer/internal/config"
	"github.com/ukydev/vehicle-viewer/internal/db"
	"github.com/ukydev/vehicle-viewer/internal/events"
	"github.com/ukydev/vehicle-viewer/internal/handlers"
	"github.com/ukydev/vehicle-viewer/internal/logging"
	"github.com/ukydev/vehicle-viewer/internal/middleware"
)

// newRouter mounts the vehicles API under /api plus a health probe.
func newRouter(vehicles db.VehicleCollection, publisher events.Publisher, logger logrus.FieldLogger) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.AccessLog(logger))
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	handlers.NewVehicleHandler(vehicles, publisher, logger).Register(r.PathPrefix("/api").Subrouter())
	return r
}

// openStore picks Mongo when a URI is configured and process memory otherwise. The
// returned close func is never nil.
func openStore(ctx context.Context, cfg *config.MongoConfig, logger logrus.FieldLogger) (db.VehicleCollection, func(), error) {
	if cfg.URI == "" {
		logger.Warn("MONGO_URI not set, vehicles are kept in memory")
		return db.NewMemoryVehicleCollection(), func() {}, nil
	}

	client, err := db.ConnectMongo(ctx, cfg.URI)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	logger.WithFields(logrus.Fields{"db": cfg.Database, "collection": cfg.Collection}).Info("Connected to MongoDB")

	closeFn := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.WithError(err).Warn("MongoDB disconnect failed")
		}
	}
	return &db.MongoVehicleCollection{Collection: client.Database(cfg.Database).Collection(cfg.Collection)}, closeFn, nil
}

// openPublisher connects to the MQTT broker when one is configured.
func openPublisher(cfg *config.MQTTConfig, logger logrus.FieldLogger) (events.Publisher, func(), error) {
	if cfg.Broker == "" {
		return events.NopPublisher{}, func() {}, nil
	}

	client, err := events.ConnectMQTT(cfg, 10*time.Second)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}
	p := events.NewMQTTPublisher(client, cfg.Topic)
	logger.WithFields(logrus.Fields{"broker": cfg.Broker, "topic": p.CreatedTopic()}).Info("Publishing vehicle events")
	return p, func() { client.Disconnect(250) }, nil
}

// run serves the API until stop fires or the listener fails. Connections opened here
// are closed before it returns.
func run(cfg *config.Config, logger logrus.FieldLogger, stop <-chan os.Signal) error {
	vehicles, closeStore, err := openStore(context.Background(), cfg.Mongo, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	publisher, closePublisher, err := openPublisher(cfg.MQTT, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	srv := &http.Server{
		Addr:              cfg.API.Addr,
		Handler:           newRouter(vehicles, publisher, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.API.Addr).Info("Vehicles API listening")
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("vehicles API stopped: %w", err)
		}
		return nil
	case <-stop:
	}
	logger.Info("Shutting down vehicles API")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("vehicles API shutdown failed: %w", err)
	}
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	logger := logging.New(cfg.Log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	if err := run(cfg, logger, quit); err != nil {
		logger.WithError(err).Fatal("Vehicles API exited")
	}
}
