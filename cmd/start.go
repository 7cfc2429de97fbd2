package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"collection-manager/core/config"
	"collection-manager/core/database"
	"collection-manager/core/loader"
	"collection-manager/core/logger"
	"collection-manager/core/middleware/pin"
	"collection-manager/core/middleware/rayid"
	"collection-manager/core/storage"

	"collection-manager/feature/catalog"
	catmodels "collection-manager/feature/catalog/models"
	"collection-manager/feature/collection"
	colmodels "collection-manager/feature/collection/models"
	"collection-manager/feature/exchange"
	"collection-manager/feature/stats"
	"collection-manager/feature/trades"
	tradesmodels "collection-manager/feature/trades/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "collection-manager/docs/swagger"
)

// @title Collection Manager API
// @version 1.0
// @description API for tracking two Lorcana collections and the trades between them.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the collection manager server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		if !cfg.Server.HasValidOwners() {
			log.Fatalf("Invalid owner configuration: owners must be set and distinct")
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := db.AutoMigrate(
			&catmodels.Card{},
			&colmodels.Owner{},
			&colmodels.StockEntry{},
			&tradesmodels.Trade{},
		); err != nil {
			logg.Fatal("Failed to migrate schema", zap.Error(err))
		}

		// 4. Initialize Storage (card image mirror)
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 2.5 Public Endpoints (Swagger, health, PIN verification)
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/healthz", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true})
		})
		app.Post("/pin", pin.VerifyHandler(pin.Config{Pin: cfg.Server.Pin}))

		// 3. PIN Gate (Protect everything below)
		app.Use(pin.New(pin.Config{Pin: cfg.Server.Pin}))

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(catalog.NewFeature(db, store, cfg.Storage.Bucket, logg))
		mgr.Register(collection.NewFeature(db, logg))
		mgr.Register(exchange.NewFeature(db, logg, cfg.Server.OwnerA, cfg.Server.OwnerB, cfg.Exchange))
		mgr.Register(trades.NewFeature(db, logg))
		mgr.Register(stats.NewFeature(db, logg, cfg.Server.OwnerA, cfg.Server.OwnerB))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Start Server
		go func() {
			logg.Info("Starting server",
				zap.String("port", cfg.Server.Port),
				zap.String("owner_a", cfg.Server.OwnerA),
				zap.String("owner_b", cfg.Server.OwnerB),
			)
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
