// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment. Nested sections use
// envPrefix tags, so the store URI is read from STORAGE_DB_DATABASE_URI
// and the probe interval from SERVER_STORE_PROBE_INTERVAL.
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrParsingEnv, err)
	}
	return nil
}
