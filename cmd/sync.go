package cmd

import (
	"context"
	"log"

	"collection-manager/core/config"
	"collection-manager/core/database"
	"collection-manager/core/logger"
	"collection-manager/core/storage"
	catmodels "collection-manager/feature/catalog/models"
	"collection-manager/feature/catalog/sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import the card catalog from the Lorcast API",
	Long: `Fetches every numbered chapter from the Lorcast API and upserts the
cards into the local catalog. With sync.mirror_images enabled, card images
are copied into object storage as well.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}
		if err := db.AutoMigrate(&catmodels.Card{}); err != nil {
			return err
		}

		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return err
		}

		svc := sync.NewService(db, store, cfg.Storage.Bucket, logg, cfg.Sync)
		report, err := svc.Run(context.Background())
		if err != nil {
			return err
		}

		logg.Info("Catalog sync finished",
			zap.Int("sets", report.Sets),
			zap.Int("upserts", report.Upserts),
			zap.Int("mirrored", report.Mirrored),
			zap.Int("skipped", report.Skipped),
		)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(syncCmd)
}
