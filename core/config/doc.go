// Package config provides configuration management for the blocklist
// sync tool.
//
// It utilizes Viper for loading configuration from a TOML file,
// environment variables and an optional .env file, with environment
// variables taking precedence over the file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Sync: blocklist sources, destinations, merge plan and push behaviour
//   - Log: logging level and format
//   - Database: MySQL connection details for the audit trail
//   - Audit: audit trail toggle
//   - Archive: object storage for merged snapshots
//
// # Usage
//
//	cfg, err := config.LoadConfig("fediblock.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Sync.MergePlan)
package config
