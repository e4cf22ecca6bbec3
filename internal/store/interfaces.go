// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// DocumentStore is a collection-oriented store of JSON-like documents keyed by
// string ids. All backends report failures through the sentinel errors of
// this package so that callers can classify them with [errors.Is].
type DocumentStore interface {
	// Get returns the document collection/id or an error wrapping ErrNotFound.
	Get(ctx context.Context, collection, id string) (Snapshot, error)

	// Add stores data under a freshly generated id and returns that id.
	Add(ctx context.Context, collection string, data any) (string, error)

	// Create stores data under id. It fails with ErrAlreadyExists when the
	// document is already present.
	Create(ctx context.Context, collection, id string, data any) error

	// Set writes data under id, replacing any existing document.
	Set(ctx context.Context, collection, id string, data any) error

	// Update merges fields into an existing document. It fails with
	// ErrNotFound when the document is absent.
	Update(ctx context.Context, collection, id string, fields map[string]any) error

	// Query returns the documents of collection matching q.
	Query(ctx context.Context, collection string, q Query) ([]Snapshot, error)

	// Close releases the backend's resources.
	Close(ctx context.Context) error
}

// BlobStore stores binary objects and returns a URL they can be fetched from.
type BlobStore interface {
	Upload(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// IDGenerator produces document ids for Add.
type IDGenerator interface {
	Generate() string
}
