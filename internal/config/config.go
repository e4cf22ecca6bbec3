// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container of report-desk.
// It is populated by merging values from environment variables (optionally
// seeded from a .env file), command-line flags, an optional YAML file and
// built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
//   - yaml: key in the YAML configuration file.
type StructuredConfig struct {
	// App holds admin credentials, token parameters, logging and version.
	App App `envPrefix:"APP_" yaml:"app"`

	// Storage holds the document store DSN and the blob store settings.
	Storage Storage `envPrefix:"STORAGE_" yaml:"storage"`

	// Server holds network address and timeout settings for the HTTP and
	// gRPC servers.
	Server Server `envPrefix:"SERVER_" yaml:"server"`

	// Adapter holds settings for the REST document store client used when
	// the DSN is an http(s) URL.
	Adapter Adapter `envPrefix:"ADAPTER_" yaml:"adapter"`

	// Reports holds report lifecycle switches.
	Reports Reports `envPrefix:"REPORTS_" yaml:"reports"`

	// ConfigFilePath is the optional path to a YAML (or JSON) configuration
	// file. Populated via the CONFIG environment variable or the -c / -config flag.
	ConfigFilePath string `env:"CONFIG" yaml:"-"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the secret key used to sign and verify admin JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY" yaml:"token_sign_key"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER" yaml:"token_issuer"`

	// TokenDuration specifies how long an admin token remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION" yaml:"token_duration"`

	// AdminLogin is the login accepted by POST /api/admin/login.
	// Env: APP_ADMIN_LOGIN
	AdminLogin string `env:"ADMIN_LOGIN" yaml:"admin_login"`

	// AdminPasswordHash is the bcrypt hash of the admin password, as printed
	// by `adm hash-password`.
	// Env: APP_ADMIN_PASSWORD_HASH
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH" yaml:"admin_password_hash"`

	// LogLevel is the minimum zerolog level (debug, info, warn, error).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL" yaml:"log_level"`

	// Version is exposed via the /api/version/ endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION" yaml:"version"`
}

// Storage groups the configuration of the document store and the blob store.
type Storage struct {
	DB   DB   `envPrefix:"DB_" yaml:"db"`
	Blob Blob `envPrefix:"BLOB_" yaml:"blob"`
}

// DB holds the document store connection settings.
type DB struct {
	// DSN selects the document store backend by scheme:
	// mongodb://, mongodb+srv://, postgres://, sqlite://, memory://, http(s)://.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI" yaml:"dsn"`

	// Database is the MongoDB database name.
	// Env: STORAGE_DB_NAME
	Database string `env:"NAME" yaml:"name"`
}

// Blob holds the screenshot blob store settings.
type Blob struct {
	// Backend is "s3", "files" or empty to disable screenshot uploads.
	// Env: STORAGE_BLOB_BACKEND
	Backend string `env:"BACKEND" yaml:"backend"`

	// Dir is the directory used by the "files" backend.
	// Env: STORAGE_BLOB_DIR
	Dir string `env:"DIR" yaml:"dir"`

	// PublicURL is prepended to blob names to build their retrieval URL.
	// For S3 an empty value switches to presigned URLs.
	// Env: STORAGE_BLOB_PUBLIC_URL
	PublicURL string `env:"PUBLIC_URL" yaml:"public_url"`

	S3 S3 `envPrefix:"S3_" yaml:"s3"`
}

// S3 holds the S3-compatible object storage settings.
type S3 struct {
	Bucket    string `env:"BUCKET" yaml:"bucket"`
	Region    string `env:"REGION" yaml:"region"`
	Endpoint  string `env:"ENDPOINT" yaml:"endpoint"`
	AccessKey string `env:"ACCESS_KEY" yaml:"access_key"`
	SecretKey string `env:"SECRET_KEY" yaml:"secret_key"`
	PathStyle bool   `env:"PATH_STYLE" yaml:"path_style"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address of the HTTP API, "host:port".
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS" yaml:"http_address"`

	// GRPCAddress is the TCP address of the gRPC health service, "host:port".
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS" yaml:"grpc_address"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" yaml:"request_timeout"`

	// ShutdownTimeout bounds graceful shutdown of the listeners.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" yaml:"shutdown_timeout"`

	// StoreProbeInterval is how often the document store is probed for the
	// gRPC health status. A negative value disables the probe.
	// Env: SERVER_STORE_PROBE_INTERVAL
	StoreProbeInterval time.Duration `env:"STORE_PROBE_INTERVAL" yaml:"store_probe_interval"`
}

// Adapter holds settings of the REST document store client.
type Adapter struct {
	// APIKey is sent as a bearer token with every request.
	// Env: ADAPTER_API_KEY
	APIKey string `env:"API_KEY" yaml:"api_key"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" yaml:"request_timeout"`
}

// Reports holds report lifecycle switches.
type Reports struct {
	// PermissiveStatus disables the transition table for UpdateStatus so any
	// status may overwrite any other.
	// Env: REPORTS_PERMISSIVE_STATUS
	PermissiveStatus bool `env:"PERMISSIVE_STATUS" yaml:"permissive_status"`
}

// GetStructuredConfig loads, merges, and validates the server configuration
// from all available sources in the following priority order (earlier
// sources win for non-zero fields):
//  1. Environment variables (after loading .env, if present)
//  2. Command-line flags
//  3. YAML file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withDotEnv().
		withEnv().
		withFlags(args).
		withFile().
		withDefaults().
		build()
	if err != nil {
		return nil, err
	}

	return cfg, cfg.validateServer()
}

// LoadToolConfig loads the configuration used by command-line tools, which
// own their flags. configPath, when set, takes the place of the CONFIG variable.
func LoadToolConfig(configPath string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv().
		withEnv().
		with(&StructuredConfig{ConfigFilePath: configPath}).
		withFile().
		withDefaults().
		build()
}

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "report-desk",
			TokenDuration: time.Hour,
			AdminLogin:    "admin",
			LogLevel:      "info",
			Version:       "dev",
		},
		Storage: Storage{
			DB: DB{
				DSN:      "memory://",
				Database: "report_desk",
			},
		},
		Server: Server{
			RequestTimeout:     15 * time.Second,
			ShutdownTimeout:    10 * time.Second,
			StoreProbeInterval: 30 * time.Second,
		},
		Adapter: Adapter{
			RequestTimeout: 10 * time.Second,
		},
	}
}
