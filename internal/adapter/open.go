// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"strings"

	"github.com/MKhiriev/report-desk/internal/config"
	"github.com/MKhiriev/report-desk/internal/logger"
	"github.com/MKhiriev/report-desk/internal/store"
)

// OpenDocumentStore opens the document store named by cfg.Storage.DB.DSN.
// http(s) DSNs are served by the REST client of this package, every other
// scheme by [store.NewDocumentStore].
func OpenDocumentStore(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (store.DocumentStore, error) {
	dsn := cfg.Storage.DB.DSN
	if strings.HasPrefix(dsn, "http://") || strings.HasPrefix(dsn, "https://") {
		log.Info().Msg("using remote document api")
		return NewHTTPDocumentStore(dsn, cfg.Adapter, log)
	}

	return store.NewDocumentStore(ctx, cfg.Storage.DB, log)
}

// OpenStorages opens the document store and the blob store described by cfg.
func OpenStorages(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (*store.Storages, error) {
	documents, err := OpenDocumentStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	storages, err := store.NewStorages(ctx, documents, cfg.Storage.Blob, log)
	if err != nil {
		documents.Close(ctx)
		return nil, err
	}

	return storages, nil
}
