// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/report-desk/internal/adapter"
	"github.com/MKhiriev/report-desk/internal/config"
	"github.com/MKhiriev/report-desk/internal/fallback"
	"github.com/MKhiriev/report-desk/internal/handler"
	"github.com/MKhiriev/report-desk/internal/logger"
	"github.com/MKhiriev/report-desk/internal/server"
	"github.com/MKhiriev/report-desk/internal/service"
	"github.com/MKhiriev/report-desk/internal/workers"
	"github.com/MKhiriev/report-desk/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(info)

	log := logger.NewLogger("report-desk-server")
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetGlobalLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}
	if info.Known() {
		cfg.App.Version = info.BuildVersion()
	}

	ctx := context.Background()

	storages, err := adapter.OpenStorages(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close(ctx)

	policy := fallback.Policy{
		Logger:   log,
		Notifier: fallback.ContextNotifier{Fallback: fallback.LogNotifier{Logger: log}},
	}
	services := service.NewServices(storages, cfg.Reports, policy, log)

	handlers, err := handler.NewHandlers(services, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	probe := &workers.StoreProbe{
		Documents:  storages.Documents,
		Collection: service.CollectionSettings,
		ID:         service.SettingsDocumentID,
		Interval:   cfg.Server.StoreProbeInterval,
		Timeout:    cfg.Server.RequestTimeout,
		Logger:     log,
	}
	if handlers.GRPC != nil {
		probe.OnChange = handlers.GRPC.SetStoreReachable
	}

	srv, err := server.NewServer(handlers, workers.NewWorkers(probe), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}
