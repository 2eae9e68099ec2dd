package main

import (
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"servicemap/internal/storage"
)

var (
	validateJSON bool

	s3Bucket string
	s3Key    string

	redisAddr string
	redisKey  string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the dataset and report records that cannot be plotted",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

var s3Cmd = &cobra.Command{
	Use:   "s3",
	Short: "Upload the dataset to MinIO/S3",
	Args:  cobra.NoArgs,
	RunE:  runS3,
}

var redisCmd = &cobra.Command{
	Use:   "redis",
	Short: "Store the dataset in Redis",
	Args:  cobra.NoArgs,
	RunE:  runRedis,
}

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "print the prepared dataset as JSON")

	s3Cmd.Flags().StringVar(&s3Bucket, "bucket", "", "target bucket (default SERVICES_BUCKET)")
	s3Cmd.Flags().StringVar(&s3Key, "key", "", "object key (default SERVICES_OBJECT_KEY)")

	redisCmd.Flags().StringVar(&redisAddr, "addr", "", "redis address (default REDIS_ADDR)")
	redisCmd.Flags().StringVar(&redisKey, "key", "", "redis key (default REDIS_KEY)")

	rootCmd.AddCommand(validateCmd, s3Cmd, redisCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	records, err := loadRecords(cmd.Context())
	if err != nil {
		return err
	}

	if validateJSON {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal services: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	skipped := 0
	for _, rec := range records {
		if !rec.Plottable() {
			skipped++
			cmd.Printf("  not plottable: %s %q (%v, %v)\n", rec.ID, rec.Name, rec.Lat, rec.Lng)
		}
	}
	cmd.Printf("%d records, %d plottable, %d skipped\n", len(records), len(records)-skipped, skipped)
	return nil
}

func runS3(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	records, err := loadRecords(ctx)
	if err != nil {
		return err
	}

	bucket := orDefault(s3Bucket, cfg.MinIO.Bucket)
	key := orDefault(s3Key, cfg.MinIO.ObjectKey)

	svc, err := storage.NewS3Service(cfg.MinIO, lg.Logger)
	if err != nil {
		return err
	}
	if err := svc.CreateBucket(ctx, bucket, ""); err != nil {
		return err
	}
	if err := svc.PutServices(ctx, bucket, key, records); err != nil {
		return err
	}
	cmd.Printf("published %d records to s3://%s/%s\n", len(records), bucket, key)
	return nil
}

func runRedis(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	records, err := loadRecords(ctx)
	if err != nil {
		return err
	}

	client := redis.NewClient(&redis.Options{Addr: orDefault(redisAddr, cfg.RedisAddr)})
	defer client.Close()

	key := orDefault(redisKey, cfg.RedisKey)
	if err := storage.NewRedisSource(client, key).Publish(ctx, records); err != nil {
		return err
	}
	cmd.Printf("published %d records to redis key %s\n", len(records), key)
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

