package config

import (
	"fmt"
	"reflect"
	"strings"

	"fediblock-sync/core/audit"
	"fediblock-sync/core/database"
	"fediblock-sync/core/logger"
	"fediblock-sync/core/storage"
	"fediblock-sync/feature/blocklist/sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ArchiveConfig controls the merged-snapshot archive.
type ArchiveConfig struct {
	// Enabled switches snapshot uploads on. When false no storage client
	// is created.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Storage holds the object storage connection details.
	Storage storage.Config `mapstructure:"storage"`
}

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Sync holds the blocklist pipeline settings: sources, destinations,
	// merge plan and push behaviour.
	Sync sync.Config `mapstructure:"sync"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the audit database connection.
	Database database.Config `mapstructure:"database"`
	// Audit holds configuration for the audit trail.
	Audit audit.Config `mapstructure:"audit"`
	// Archive holds configuration for the snapshot archive.
	Archive ArchiveConfig `mapstructure:"archive"`
}

// LoadConfig loads configuration from an optional TOML file, the
// environment and a .env file. Environment variables win over the file;
// keys map by joining sections with underscores (e.g. SYNC_MERGEPLAN ->
// sync.mergeplan).
func LoadConfig(file string) (*Config, error) {
	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(".env")

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Slices and maps (source and destination lists) come from the
		// config file only; an empty-string default would shadow them.
		if field.Type.Kind() == reflect.Slice || field.Type.Kind() == reflect.Map {
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
