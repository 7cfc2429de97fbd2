package cmd

import (
	"log"

	"collection-manager/core/config"
	"collection-manager/core/database"
	"collection-manager/core/logger"
	colmodels "collection-manager/feature/collection/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm/clause"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the configured owners",
	Long:  `Ensures both configured owners exist in the database. Safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		if !cfg.Server.HasValidOwners() {
			log.Fatalf("Invalid owner configuration: owners must be set and distinct")
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
		if err := db.AutoMigrate(&colmodels.Owner{}); err != nil {
			return err
		}

		for _, id := range []string{cfg.Server.OwnerA, cfg.Server.OwnerB} {
			owner := colmodels.Owner{ID: id, Name: id}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&owner).Error; err != nil {
				return err
			}
			logg.Info("Owner ready", zap.String("owner", id))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(seedCmd)
}
