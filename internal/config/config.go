// Package config centralizes configuration lookup for the CLI. Values come
// from Viper, which layers config files over environment variables; keys
// set only in the OS environment still resolve.
package config

import (
	"os"

	"github.com/spf13/viper"
)

// Configuration keys and their defaults.
const (
	// KeyDataDir locates the entity YAML directory.
	KeyDataDir = "data_dir"
	// KeyWorkers bounds batch concurrency.
	KeyWorkers = "workers"
	// KeyEnrichModel selects the Gemini model for enrichment.
	KeyEnrichModel = "enrich_model"

	// DefaultDataDir is used when no data directory is configured.
	DefaultDataDir = "data/entities"
)

// GetString gets a string value, checking Viper first and falling back to
// the OS environment for keys Viper has not bound.
func GetString(key string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return os.Getenv(key)
}

// DataDir returns the configured entity data directory.
func DataDir() string {
	if dir := GetString(KeyDataDir); dir != "" {
		return dir
	}
	return DefaultDataDir
}

// Workers returns the configured batch concurrency, or 0 for the pipeline
// default.
func Workers() int {
	return viper.GetInt(KeyWorkers)
}

// EnrichModel returns the configured enrichment model, or "" for the
// enricher default.
func EnrichModel() string {
	return GetString(KeyEnrichModel)
}
