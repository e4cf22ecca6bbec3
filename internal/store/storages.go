// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/report-desk/internal/config"
	"github.com/MKhiriev/report-desk/internal/logger"
	"github.com/MKhiriev/report-desk/internal/utils"
)

// DSN schemes understood by NewDocumentStore.
const (
	SchemeMemory     = "memory://"
	SchemeSQLite     = "sqlite://"
	SchemePostgres   = "postgres://"
	SchemePostgreSQL = "postgresql://"
	SchemeMongo      = "mongodb://"
	SchemeMongoSRV   = "mongodb+srv://"
)

// Storages groups the document and blob stores the services run on.
// Blobs is nil when screenshot uploads are disabled.
type Storages struct {
	Documents DocumentStore
	Blobs     BlobStore
}

// NewStorages opens the blob store described by cfg.Blob around an already
// opened document store.
func NewStorages(ctx context.Context, documents DocumentStore, cfg config.Blob, log *logger.Logger) (*Storages, error) {
	blobs, err := NewBlobStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Storages{Documents: documents, Blobs: blobs}, nil
}

// Close releases the document store.
func (s *Storages) Close(ctx context.Context) error {
	return s.Documents.Close(ctx)
}

// NewDocumentStore opens the backend selected by the scheme of cfg.DSN.
// SQL backends are migrated before use.
func NewDocumentStore(ctx context.Context, cfg config.DB, log *logger.Logger) (DocumentStore, error) {
	ids := utils.NewUUIDGenerator()

	switch dsn := cfg.DSN; {
	case strings.HasPrefix(dsn, SchemeMemory):
		return NewMemoryDocumentStore(strings.TrimPrefix(dsn, SchemeMemory), ids, log)

	case strings.HasPrefix(dsn, SchemeSQLite):
		path := strings.TrimPrefix(dsn, SchemeSQLite)
		if path == "" {
			path = ":memory:"
		}
		db, err := NewConnectSQLite(ctx, path, log)
		if err != nil {
			return nil, err
		}
		return migrated(db, ids, log)

	case strings.HasPrefix(dsn, SchemePostgres), strings.HasPrefix(dsn, SchemePostgreSQL):
		db, err := NewConnectPostgres(ctx, dsn, log)
		if err != nil {
			return nil, err
		}
		return migrated(db, ids, log)

	case strings.HasPrefix(dsn, SchemeMongo), strings.HasPrefix(dsn, SchemeMongoSRV):
		return NewConnectMongo(ctx, dsn, cfg.Database, ids, log)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedDSN, redactDSN(cfg.DSN))
}

func migrated(db *DB, ids IDGenerator, log *logger.Logger) (DocumentStore, error) {
	if err := db.Migrate(); err != nil {
		log.Err(err).Str("func", "store.migrated").Msg("error applying migrations")
		db.Close()
		return nil, err
	}
	return NewSQLDocumentStore(db, ids), nil
}

// NewBlobStore opens the blob backend named by cfg.Backend. An empty backend
// yields a nil BlobStore.
func NewBlobStore(ctx context.Context, cfg config.Blob, log *logger.Logger) (BlobStore, error) {
	switch cfg.Backend {
	case "":
		return nil, nil
	case "files":
		return NewFileBlobStore(cfg.Dir, cfg.PublicURL, log)
	case "s3":
		return NewS3BlobStore(ctx, cfg, log)
	}
	return nil, fmt.Errorf("%w: unknown blob backend %q", config.ErrInvalidBlobConfigs, cfg.Backend)
}

// redactDSN strips credentials from dsn for error messages.
func redactDSN(dsn string) string {
	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return dsn
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		rest = "***@" + rest[at+1:]
	}
	return scheme + "://" + rest
}
