// Package config provides configuration management for the sync service.
//
// It utilizes Viper for loading configuration from environment variables and
// a local .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, service identity)
//   - Database: PostgreSQL connection details
//   - CRM: OAuth credentials and API endpoints for the CRM
//   - Sync: reconciliation run policies (timeouts, workers, sweep policy)
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
