/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads bookshelf settings from an optional YAML file and the
// environment. Environment variables (optionally read from a .env file) take
// precedence over the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/suparena/bookshelf/logger"
	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendFile     = "file"
	BackendDynamoDB = "dynamodb"
	BackendMongoDB  = "mongodb"
)

// Config represents the full application configuration surface.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     logger.Config `yaml:"log"`
}

// StorageConfig selects where collections are persisted.
type StorageConfig struct {
	Backend  string         `yaml:"backend"`
	File     FileConfig     `yaml:"file"`
	DynamoDB DynamoDBConfig `yaml:"dynamodb"`
	MongoDB  MongoDBConfig  `yaml:"mongodb"`
}

// FileConfig holds settings for the directory backend.
type FileConfig struct {
	Dir string `yaml:"dir"`
}

// DynamoDBConfig holds settings for the DynamoDB backend. Empty credentials
// use the default AWS credential chain.
type DynamoDBConfig struct {
	Table     string `yaml:"table"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

// Default returns the configuration used when nothing is set: JSON files in
// ./data and info level JSON logs.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			Backend: BackendFile,
			File:    FileConfig{Dir: "data"},
			DynamoDB: DynamoDBConfig{
				Region: "us-east-1",
			},
			MongoDB: MongoDBConfig{
				Database:   "bookshelf",
				Collection: "slots",
			},
		},
		Log: logger.Config{Level: "info", Format: "json"},
	}
}

// Load reads the YAML file at path (skipped when empty), then the env file
// (".env" when empty; a missing file is fine), applies environment overrides
// and validates the result.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file %s: %w", path, err)
		}
		defer f.Close()
		if err := Decode(f, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if envFile == "" {
		// Missing .env files are acceptable when configuration comes from the
		// environment directly.
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFile); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
		}
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Decode reads YAML from r into cfg. Unknown keys are an error.
func Decode(r io.Reader, cfg *Config) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(cfg)
}

// ApplyEnv overrides fields with the environment variables that are set.
func (c *Config) ApplyEnv() {
	for _, o := range []struct {
		env    string
		target *string
	}{
		{"BOOKSHELF_BACKEND", &c.Storage.Backend},
		{"BOOKSHELF_DATA_DIR", &c.Storage.File.Dir},
		{"AWS_DDB_TABLE", &c.Storage.DynamoDB.Table},
		{"AWS_REGION", &c.Storage.DynamoDB.Region},
		{"AWS_DDB_ENDPOINT", &c.Storage.DynamoDB.Endpoint},
		{"AWS_ACCESS_KEY", &c.Storage.DynamoDB.AccessKey},
		{"AWS_SECRET_KEY", &c.Storage.DynamoDB.SecretKey},
		{"MONGODB_URI", &c.Storage.MongoDB.URI},
		{"MONGODB_DB_NAME", &c.Storage.MongoDB.Database},
		{"MONGODB_COLLECTION", &c.Storage.MongoDB.Collection},
		{"BOOKSHELF_LOG_LEVEL", &c.Log.Level},
		{"BOOKSHELF_LOG_FORMAT", &c.Log.Format},
	} {
		if v := os.Getenv(o.env); v != "" {
			*o.target = v
		}
	}
}

// Validate ensures that the selected backend has what it needs.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	switch c.Storage.Backend {
	case BackendFile:
		if c.Storage.File.Dir == "" {
			return errors.New("storage.file.dir must be provided")
		}
	case BackendDynamoDB:
		switch {
		case c.Storage.DynamoDB.Table == "":
			return errors.New("storage.dynamodb.table (AWS_DDB_TABLE) must be provided")
		case c.Storage.DynamoDB.Region == "":
			return errors.New("storage.dynamodb.region (AWS_REGION) must be provided")
		case (c.Storage.DynamoDB.AccessKey == "") != (c.Storage.DynamoDB.SecretKey == ""):
			return errors.New("storage.dynamodb access_key and secret_key must be set together")
		}
	case BackendMongoDB:
		switch {
		case c.Storage.MongoDB.URI == "":
			return errors.New("storage.mongodb.uri (MONGODB_URI) must be provided")
		case c.Storage.MongoDB.Database == "":
			return errors.New("storage.mongodb.database (MONGODB_DB_NAME) must be provided")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}
