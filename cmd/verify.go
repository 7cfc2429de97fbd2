package cmd

import (
	"context"
	"log"

	"collection-manager/core/config"
	"collection-manager/core/database"
	"collection-manager/core/logger"
	"collection-manager/core/storage"
	"collection-manager/feature/catalog/mirror"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var verifyPrune bool

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Audit the card image mirror",
	Long: `Compares the catalog against the object storage bucket and reports
cards whose image was never mirrored as well as leftover objects. With
--prune, the leftovers are removed.`,
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

		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return err
		}

		svc := mirror.NewService(db, store, cfg.Storage.Bucket, logg)
		report, err := svc.Audit(context.Background())
		if err != nil {
			return err
		}

		logg.Info("Mirror audit finished",
			zap.Int("expected", report.Expected),
			zap.Int("mirrored", report.Mirrored),
			zap.Int("missing", len(report.Missing)),
			zap.Int("orphans", len(report.Orphans)),
		)
		for _, key := range report.Missing {
			logg.Warn("Image not mirrored", zap.String("key", key))
		}
		for _, key := range report.Orphans {
			logg.Warn("Orphan mirror object", zap.String("key", key))
		}

		if verifyPrune && len(report.Orphans) > 0 {
			if err := svc.Prune(context.Background(), report.Orphans); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	verifyCmd.Flags().BoolVar(&verifyPrune, "prune", false, "remove orphan mirror objects")
	RootCmd.AddCommand(verifyCmd)
}
