// Package config provides configuration management for the Collection Manager.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file (via godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP server settings (port, PIN code, tracked owners)
//   - Database: MySQL connection details
//   - Storage: S3/MinIO credentials and bucket settings for card images
//   - Log: Logging level and format
//   - Exchange: surplus reconciliation behavior (variant aggregation)
//   - Sync: catalog import source and image mirroring
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
