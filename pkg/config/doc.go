// Package config loads typed configuration structs from environment
// variables.
//
// Configuration is modeled as process-wide immutable state: each struct
// type is parsed exactly once and cached, so every later Load for the same
// type observes the values captured at startup. Parsing is delegated to
// github.com/caarlos0/env with an optional .env file loaded via godotenv
// for local development.
//
// # Usage
//
//	type IngestConfig struct {
//	    StorageDir string `env:"UPLOAD_STORAGE_DIR,required"`
//	}
//
//	var cfg IngestConfig
//	config.MustLoad(&cfg)
package config
