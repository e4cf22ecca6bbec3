// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"context"
	"io"
	"strings"

	"github.com/MKhiriev/report-desk/internal/adapter"
	"github.com/MKhiriev/report-desk/internal/config"
	"github.com/MKhiriev/report-desk/internal/fallback"
	"github.com/MKhiriev/report-desk/internal/logger"
	"github.com/MKhiriev/report-desk/internal/service"
	"github.com/rs/zerolog"
)

// Options are the global flags of adm.
type Options struct {
	// ConfigPath is the value of --config.
	ConfigPath string
	// Verbose lowers the log level from warn to debug.
	Verbose bool
	// Stderr receives logs and fallback notices.
	Stderr io.Writer
}

// Opener builds the services a command runs against. The returned close
// function releases the stores.
type Opener func(ctx context.Context, opts Options) (*service.Services, func(context.Context) error, error)

// OpenServices is the production [Opener]. It loads the configuration the
// same way the server does and opens the configured stores.
func OpenServices(ctx context.Context, opts Options) (*service.Services, func(context.Context) error, error) {
	log := logger.NewConsoleLogger("adm", opts.Stderr)
	log.Logger = log.Level(zerolog.WarnLevel)
	if opts.Verbose {
		log.Logger = log.Level(zerolog.DebugLevel)
	}

	cfg, err := config.LoadToolConfig(opts.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	scheme, _, _ := strings.Cut(cfg.Storage.DB.DSN, "://")
	log.Debug().Str("scheme", scheme).Msg("configuration loaded")

	storages, err := adapter.OpenStorages(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	return service.NewServices(storages, cfg.Reports, newPolicy(log, opts.Stderr), log), storages.Close, nil
}

// newPolicy writes fallback notices to stderr.
func newPolicy(log *logger.Logger, stderr io.Writer) fallback.Policy {
	return fallback.Policy{
		Logger:   log,
		Notifier: &fallback.WriterNotifier{W: stderr},
	}
}
