// Package database handles the MySQL connection for the Collection Manager.
//
// It provides a wrapper around GORM that configures the DSN (timeouts,
// charset, time parsing), the connection pool, and an initial ping so
// misconfiguration fails fast at startup instead of on the first query.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
