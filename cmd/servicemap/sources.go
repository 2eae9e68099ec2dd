package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"servicemap/internal/config"
	"servicemap/internal/logger"
	"servicemap/internal/source"
	"servicemap/internal/storage"
)

// buildSource returns the configured dataset source. Remote sources fall back
// to the local file before the controller falls back to the embedded list.
// When the configured source cannot be built, the local file source is
// returned with the error. The returned cleanup releases any connections.
func buildSource(ctx context.Context, cfg *config.Config, log *logger.Logger) (source.Source, func(), error) {
	file := source.NewFileSource(cfg.ServicesFile)
	noop := func() {}

	switch cfg.Source {
	case config.SourceFile:
		return file, noop, nil

	case config.SourceHTTP:
		client := &http.Client{Timeout: cfg.FetchTimeout}
		return source.Chain{source.NewHTTPSource(cfg.ServicesURL, client), file}, noop, nil

	case config.SourceS3:
		svc, err := storage.NewS3Service(cfg.MinIO, log.Logger)
		if err != nil {
			return file, noop, err
		}
		return source.Chain{storage.NewS3Source(svc, cfg.MinIO.Bucket, cfg.MinIO.ObjectKey), file}, noop, nil

	case config.SourcePostgres:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		pool, err := storage.OpenPostgres(connectCtx, cfg.DatabaseURL)
		if err != nil {
			return file, noop, err
		}
		return source.Chain{storage.NewPostgresSource(pool), file}, pool.Close, nil

	case config.SourceRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		cleanup := func() {
			if err := client.Close(); err != nil {
				log.Warn("redis_close_failed", "error", err.Error())
			}
		}
		return source.Chain{storage.NewRedisSource(client, cfg.RedisKey), file}, cleanup, nil
	}
	return file, noop, fmt.Errorf("unknown services source %q", cfg.Source)
}
