// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates an empty DSN or a DSN whose scheme
	// does not name a supported document store.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidBlobConfigs indicates an unknown blob backend or a backend
	// missing its required settings.
	ErrInvalidBlobConfigs = errors.New("invalid blob storage configuration")
	// ErrInvalidServerConfigs indicates missing listener settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidAppConfigs indicates missing admin credentials or token settings.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
)

// ErrParsingEnv wraps failures to read or convert environment variables.
var ErrParsingEnv = errors.New("error parsing environment")
