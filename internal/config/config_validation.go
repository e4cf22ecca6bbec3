// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// dsnSchemes lists the document store backends understood by store.NewDocumentStore.
var dsnSchemes = []string{"mongodb://", "mongodb+srv://", "postgres://", "postgresql://", "sqlite://", "memory://", "http://", "https://"}

// validate checks the settings shared by every binary.
func (cfg *StructuredConfig) validate() error {
	if !hasKnownScheme(cfg.Storage.DB.DSN) {
		return fmt.Errorf("%w: unsupported DSN %q", ErrInvalidStorageConfigs, cfg.Storage.DB.DSN)
	}

	blob := cfg.Storage.Blob
	switch blob.Backend {
	case "":
	case "files":
		if blob.Dir == "" || blob.PublicURL == "" {
			return fmt.Errorf("%w: files backend needs a directory and a public URL", ErrInvalidBlobConfigs)
		}
	case "s3":
		if blob.S3.Bucket == "" || blob.S3.Region == "" {
			return fmt.Errorf("%w: s3 backend needs a bucket and a region", ErrInvalidBlobConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidBlobConfigs, blob.Backend)
	}

	return nil
}

// validateServer checks the settings the API server cannot start without.
func (cfg *StructuredConfig) validateServer() error {
	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: empty HTTP address", ErrInvalidServerConfigs)
	}

	if cfg.App.TokenSignKey == "" || cfg.App.AdminLogin == "" || cfg.App.AdminPasswordHash == "" {
		return fmt.Errorf("%w: admin login, password hash and token sign key are required", ErrInvalidAppConfigs)
	}

	return nil
}

func hasKnownScheme(dsn string) bool {
	for _, scheme := range dsnSchemes {
		if strings.HasPrefix(dsn, scheme) {
			return true
		}
	}
	return false
}
