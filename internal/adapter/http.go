// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/report-desk/internal/config"
	"github.com/MKhiriev/report-desk/internal/logger"
	"github.com/MKhiriev/report-desk/internal/store"
	"github.com/MKhiriev/report-desk/internal/utils"
	"github.com/go-resty/resty/v2"
)

type httpDocumentStore struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPDocumentStore constructs the REST implementation of
// store.DocumentStore. It normalises and validates baseURL, configures the
// request timeout and bearer API key, and retries requests answered with
// 502, 503 or 504.
//
// Returns an error if baseURL is empty or cannot be parsed as a valid URL.
func NewHTTPDocumentStore(baseURL string, adapterCfg config.Adapter, log *logger.Logger) (store.DocumentStore, error) {
	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid document api address: %w", err)
	}

	client := utils.NewHTTPClient().WithRetries(2, 100*time.Millisecond, time.Second)
	client.
		SetBaseURL(normalized).
		SetTimeout(adapterCfg.RequestTimeout).
		SetHeader("Accept", "application/json")
	if adapterCfg.APIKey != "" {
		client.SetAuthToken(adapterCfg.APIKey)
	}

	return &httpDocumentStore{client: client, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", ErrIncompleteAddress
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func documentPath(collection, id string) string {
	return "/v1/" + url.PathEscape(collection) + "/" + url.PathEscape(id)
}

// Get implements store.DocumentStore. It issues GET /v1/{collection}/{id}.
func (h *httpDocumentStore) Get(ctx context.Context, collection, id string) (store.Snapshot, error) {
	var doc remoteDocument

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&doc).
		Get(documentPath(collection, id))
	if err != nil {
		return store.Snapshot{}, mapTransportError("get", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return store.Snapshot{}, err
	}

	return store.NewJSONSnapshot(id, doc.Data), nil
}

// Add implements store.DocumentStore. It POSTs the document to
// /v1/{collection} and returns the id assigned by the server.
func (h *httpDocumentStore) Add(ctx context.Context, collection string, data any) (string, error) {
	var created remoteDocument

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(data).
		SetResult(&created).
		Post("/v1/" + url.PathEscape(collection))
	if err != nil {
		return "", mapTransportError("add", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", fmt.Errorf("%w: add response without id", store.ErrDecodingDocument)
	}

	return created.ID, nil
}

// Create implements store.DocumentStore. The conditional PUT is answered
// with 412 when the document already exists.
func (h *httpDocumentStore) Create(ctx context.Context, collection, id string, data any) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("If-None-Match", "*").
		SetBody(data).
		Put(documentPath(collection, id))
	if err != nil {
		return mapTransportError("create", err)
	}

	return mapHTTPError(resp)
}

// Set implements store.DocumentStore with an unconditional PUT.
func (h *httpDocumentStore) Set(ctx context.Context, collection, id string, data any) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(data).
		Put(documentPath(collection, id))
	if err != nil {
		return mapTransportError("set", err)
	}

	return mapHTTPError(resp)
}

// Update implements store.DocumentStore. It PATCHes the fields as a JSON
// merge patch; the server answers 404 for a missing document.
func (h *httpDocumentStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/merge-patch+json").
		SetBody(fields).
		Patch(documentPath(collection, id))
	if err != nil {
		return mapTransportError("update", err)
	}

	return mapHTTPError(resp)
}

// Query implements store.DocumentStore. It POSTs q to /v1/{collection}:query.
func (h *httpDocumentStore) Query(ctx context.Context, collection string, q store.Query) ([]store.Snapshot, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, err)
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(q).
		Post("/v1/" + url.PathEscape(collection) + ":query")
	if err != nil {
		return nil, mapTransportError("query", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return decodeQueryResponse(resp)
}

func decodeQueryResponse(resp *resty.Response) ([]store.Snapshot, error) {
	var result queryResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("%w: decode query response: %w", store.ErrDecodingDocument, err)
	}

	snaps := make([]store.Snapshot, 0, len(result.Documents))
	for _, doc := range result.Documents {
		snaps = append(snaps, store.NewJSONSnapshot(doc.ID, doc.Data))
	}
	return snaps, nil
}

// Close implements store.DocumentStore. Idle connections are released.
func (h *httpDocumentStore) Close(ctx context.Context) error {
	h.client.GetClient().CloseIdleConnections()
	return nil
}
