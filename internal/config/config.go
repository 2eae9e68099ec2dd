// Package config loads servicemap settings from the environment.
package config

import (
	"fmt"
	"time"

	"servicemap/internal/env"
	"servicemap/internal/keys"
	"servicemap/pkg/mapview"
	"servicemap/pkg/phone"
)

// Source kinds accepted in SERVICES_SOURCE.
const (
	SourceHTTP     = "http"
	SourceFile     = "file"
	SourceS3       = "s3"
	SourcePostgres = "postgres"
	SourceRedis    = "redis"
)

type MapConfig struct {
	CenterLat       float64
	CenterLng       float64
	Zoom            int
	LocateZoom      int
	TileURL         string
	TileAttribution string
	UserMarkerTTL   time.Duration
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
	Bucket    string
	ObjectKey string
}

type KafkaConfig struct {
	Broker  string
	Topic   string
	GroupID string
}

// Enabled reports whether every Kafka setting is present.
func (k KafkaConfig) Enabled() bool {
	return k.Broker != "" && k.Topic != "" && k.GroupID != ""
}

type Config struct {
	Env      string
	HTTPAddr string

	Source       string
	ServicesURL  string
	ServicesFile string
	FetchTimeout time.Duration
	PhoneRegion  string

	Map   MapConfig
	MinIO MinIOConfig
	Kafka KafkaConfig

	DatabaseURL  string
	RedisAddr    string
	RedisKey     string
	NominatimURL string
}

// Load reads .env (if any) and the process environment.
func Load() (*Config, error) {
	env.LoadEnv()
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Env:          env.GetEnv("APP_ENV", "development"),
		HTTPAddr:     env.GetEnv("HTTP_ADDR", ":8080"),
		Source:       env.GetEnv("SERVICES_SOURCE", SourceFile),
		ServicesURL:  env.GetEnv("SERVICES_URL", "http://localhost:8080/data/services.json"),
		ServicesFile: env.GetEnv("SERVICES_FILE", keys.Services),
		PhoneRegion:  env.GetEnv("PHONE_REGION", phone.DefaultRegion),
		Map: MapConfig{
			TileURL:         env.GetEnv("TILE_URL", mapview.OSMTileURL),
			TileAttribution: env.GetEnv("TILE_ATTRIBUTION", mapview.OSMAttribution),
			UserMarkerTTL:   30 * time.Second,
		},
		MinIO: MinIOConfig{
			Endpoint:  env.GetEnv("MINIO_ENDPOINT", ""),
			AccessKey: env.GetEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: env.GetEnv("MINIO_SECRET_KEY", ""),
			UseSSL:    env.GetBool("MINIO_USE_SSL"),
			Region:    env.GetEnv("MINIO_REGION", ""),
			Bucket:    env.GetEnv("SERVICES_BUCKET", "servicemap"),
			ObjectKey: env.GetEnv("SERVICES_OBJECT_KEY", keys.Services),
		},
		Kafka: KafkaConfig{
			Broker:  env.GetEnv("KAFKA_BROKER", ""),
			Topic:   env.GetEnv("KAFKA_TOPIC", ""),
			GroupID: env.GetEnv("KAFKA_GROUP_ID", ""),
		},
		DatabaseURL:  env.GetEnv("DATABASE_URL", ""),
		RedisAddr:    env.GetEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisKey:     env.GetEnv("REDIS_KEY", "servicemap:services"),
		NominatimURL: env.GetEnv("NOMINATIM_URL", ""),
	}

	var err error
	if cfg.Map.CenterLat, err = env.GetFloat("MAP_CENTER_LAT", 9.35); err != nil {
		return nil, fmt.Errorf("invalid MAP_CENTER_LAT: %w", err)
	}
	if cfg.Map.CenterLng, err = env.GetFloat("MAP_CENTER_LNG", 42.8); err != nil {
		return nil, fmt.Errorf("invalid MAP_CENTER_LNG: %w", err)
	}
	if cfg.Map.Zoom, err = env.GetInt("MAP_ZOOM", 14); err != nil {
		return nil, fmt.Errorf("invalid MAP_ZOOM: %w", err)
	}
	if cfg.Map.LocateZoom, err = env.GetInt("MAP_LOCATE_ZOOM", 15); err != nil {
		return nil, fmt.Errorf("invalid MAP_LOCATE_ZOOM: %w", err)
	}
	timeout, err := env.GetInt("SERVICES_FETCH_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVICES_FETCH_TIMEOUT_SECONDS: %w", err)
	}
	cfg.FetchTimeout = time.Duration(timeout) * time.Second

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Source {
	case SourceHTTP, SourceFile, SourceS3, SourcePostgres, SourceRedis:
	default:
		return fmt.Errorf("unknown SERVICES_SOURCE %q", c.Source)
	}
	if c.Source == SourcePostgres && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required when SERVICES_SOURCE=%s", SourcePostgres)
	}
	return nil
}
