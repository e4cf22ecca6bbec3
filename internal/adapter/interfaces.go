// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a store.DocumentStore that talks to a remote
// document API over HTTP/REST.
//
// Documents are addressed as /v1/{collection}/{id}:
//
//	GET    fetch a document
//	PUT    create or replace; with "If-None-Match: *" create only
//	PATCH  merge fields into an existing document
//	POST   /v1/{collection}        add with a server-assigned id
//	POST   /v1/{collection}:query  run a store.Query
//
// HTTP status codes are mapped onto the store sentinel errors by
// mapHTTPError so that callers can use [errors.Is] regardless of the backend
// (e.g. [store.ErrNotFound] for 404, [store.ErrUnauthenticated] for 401).
package adapter

import (
	"encoding/json"

	"github.com/MKhiriev/report-desk/internal/store"
)

var _ store.DocumentStore = (*httpDocumentStore)(nil)

// remoteDocument is the wire form of a single document.
type remoteDocument struct {
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data"`
}

// queryResponse is the wire form of a query result.
type queryResponse struct {
	Documents []remoteDocument `json:"documents"`
}
