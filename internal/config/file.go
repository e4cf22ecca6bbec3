// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors [StructuredConfig] with [Duration] fields so durations
// can be written as "1h" or "30s" in the file.
type fileConfig struct {
	App struct {
		TokenSignKey      string   `yaml:"token_sign_key"`
		TokenIssuer       string   `yaml:"token_issuer"`
		TokenDuration     Duration `yaml:"token_duration"`
		AdminLogin        string   `yaml:"admin_login"`
		AdminPasswordHash string   `yaml:"admin_password_hash"`
		LogLevel          string   `yaml:"log_level"`
		Version           string   `yaml:"version"`
	} `yaml:"app"`

	Storage Storage `yaml:"storage"`

	Server struct {
		HTTPAddress        string   `yaml:"http_address"`
		GRPCAddress        string   `yaml:"grpc_address"`
		RequestTimeout     Duration `yaml:"request_timeout"`
		ShutdownTimeout    Duration `yaml:"shutdown_timeout"`
		StoreProbeInterval Duration `yaml:"store_probe_interval"`
	} `yaml:"server"`

	Adapter struct {
		APIKey         string   `yaml:"api_key"`
		RequestTimeout Duration `yaml:"request_timeout"`
	} `yaml:"adapter"`

	Reports Reports `yaml:"reports"`
}

// parseFile reads a YAML configuration file. JSON files are accepted too
// since JSON is a subset of YAML.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:      fc.App.TokenSignKey,
			TokenIssuer:       fc.App.TokenIssuer,
			TokenDuration:     time.Duration(fc.App.TokenDuration),
			AdminLogin:        fc.App.AdminLogin,
			AdminPasswordHash: fc.App.AdminPasswordHash,
			LogLevel:          fc.App.LogLevel,
			Version:           fc.App.Version,
		},
		Storage: fc.Storage,
		Server: Server{
			HTTPAddress:        fc.Server.HTTPAddress,
			GRPCAddress:        fc.Server.GRPCAddress,
			RequestTimeout:     time.Duration(fc.Server.RequestTimeout),
			ShutdownTimeout:    time.Duration(fc.Server.ShutdownTimeout),
			StoreProbeInterval: time.Duration(fc.Server.StoreProbeInterval),
		},
		Adapter: Adapter{
			APIKey:         fc.Adapter.APIKey,
			RequestTimeout: time.Duration(fc.Adapter.RequestTimeout),
		},
		Reports: fc.Reports,
	}, nil
}

// Duration is a wrapper around time.Duration that supports unmarshaling
// from strings like "1h", "30s" as well as plain nanosecond integers.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		if n, err := time.ParseDuration(s); err == nil {
			*d = Duration(n)
			return nil
		}
	}

	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("invalid duration %q", value.Value)
	}
	*d = Duration(n)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}
