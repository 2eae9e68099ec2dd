package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"servicemap/internal/config"
	"servicemap/internal/enrich"
	"servicemap/internal/logger"
	"servicemap/internal/models"
	"servicemap/internal/source"
	"servicemap/pkg/phone"
)

var (
	cfg *config.Config
	lg  *logger.Logger

	inputFile string
)

var rootCmd = &cobra.Command{
	Use:   "publisher",
	Short: "Publish the services dataset",
	Long: `Reads a services JSON document, normalizes it the same way the map
server does and publishes it to object storage or Redis.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		lg = logger.NewWithWriter(cfg.Env, cmd.ErrOrStderr())
		if inputFile == "" {
			inputFile = cfg.ServicesFile
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&inputFile, "file", "f", "", "services JSON document (default SERVICES_FILE)")
}

// loadRecords reads and prepares the input document.
func loadRecords(ctx context.Context) ([]models.ServiceRecord, error) {
	records, err := source.NewFileSource(inputFile).Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", inputFile, err)
	}
	pipeline := enrich.ServicePipeline(phone.NewDialer(cfg.PhoneRegion)).WithLogger(lg.Logger)
	return enrich.Prepare(ctx, pipeline, records), nil
}
