package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"time"

	"servicemap/internal/config"
	"servicemap/internal/controller"
	"servicemap/internal/httpapi"
	"servicemap/internal/logger"
	"servicemap/internal/service"
	"servicemap/internal/validator"
	"servicemap/pkg/geo"
	"servicemap/pkg/graceful"
	"servicemap/pkg/kafkaclient"
	"servicemap/pkg/location"
	"servicemap/pkg/phone"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	lg := logger.New(cfg.Env)

	ctx, cancel := graceful.Context(context.Background(), lg.Logger)
	defer cancel()

	src, cleanup, err := buildSource(ctx, cfg, lg)
	if err != nil {
		lg.Error("source_unavailable",
			slog.String("source", cfg.Source),
			slog.String("fallback", src.Name()),
			slog.String("error", err.Error()),
		)
	}
	defer cleanup()

	settings := controller.DefaultSettings()
	settings.Center = geo.Coordinates{Lat: cfg.Map.CenterLat, Lng: cfg.Map.CenterLng}
	settings.Zoom = cfg.Map.Zoom
	settings.LocateZoom = cfg.Map.LocateZoom
	settings.TileURL = cfg.Map.TileURL
	settings.TileAttribution = cfg.Map.TileAttribution
	settings.UserMarkerTTL = cfg.Map.UserMarkerTTL
	settings.FetchTimeout = cfg.FetchTimeout

	opts := []controller.Option{
		controller.WithSettings(settings),
		controller.WithLogger(lg),
		controller.WithLocator(httpapi.RequestLocator{}),
		controller.WithDialer(phone.NewDialer(cfg.PhoneRegion)),
	}
	if cfg.NominatimURL != "" {
		opts = append(opts, controller.WithDescriber(location.NewClient(cfg.NominatimURL, nil)))
	}

	session := httpapi.NewSession()
	ctrl := controller.New(src, session, opts...)
	ctrl.InitializeMap()
	ctrl.LoadServices(ctx)

	if cfg.Kafka.Enabled() {
		startWatcher(ctx, cfg, ctrl, lg)
	}

	handler := httpapi.NewHandler(ctrl, session, validator.New(), lg)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(handler, lg, cfg.ServicesFile),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		lg.Info("http_server_started", slog.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("http_server_failed", slog.String("error", err.Error()))
			cancel()
		}
	}()

	<-ctx.Done()
	if err := graceful.Shutdown(10*time.Second, srv.Shutdown); err != nil {
		lg.Error("http_shutdown_failed", slog.String("error", err.Error()))
	}
	lg.Info("servicemap_stopped")
}

// startWatcher reloads the dataset whenever MinIO reports a change to it.
func startWatcher(ctx context.Context, cfg *config.Config, ctrl *controller.Controller, lg *logger.Logger) {
	consumer, err := kafkaclient.NewKafkaConsumer(kafkaclient.Config{
		Broker:  cfg.Kafka.Broker,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	}, lg.Logger)
	if err != nil {
		lg.Error("kafka_consumer_failed", slog.String("error", err.Error()))
		return
	}
	consumer.StartConsuming(ctx)

	watcher := service.NewWatcher(consumer, cfg.MinIO.Bucket, cfg.MinIO.ObjectKey, func(ctx context.Context) {
		ctrl.LoadServices(ctx)
	}, lg.Logger)

	go func() {
		defer consumer.Stop()
		reloads := watcher.Run(ctx)
		lg.Info("reload_watcher_stopped", slog.Int("reloads", reloads))
	}()
}
