// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/report-desk/internal/logger"
)

// fileBlobStore writes blobs into a local directory that the HTTP server
// exposes under publicURL.
type fileBlobStore struct {
	dir       string
	publicURL string
	logger    *logger.Logger
}

// NewFileBlobStore builds a BlobStore writing to dir, creating it if needed.
func NewFileBlobStore(dir, publicURL string, log *logger.Logger) (BlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Err(err).Str("func", "NewFileBlobStore").Msg("error creating blob dir")
		return nil, fmt.Errorf("create blob dir: %w", err)
	}
	return &fileBlobStore{dir: dir, publicURL: strings.TrimRight(publicURL, "/"), logger: log}, nil
}

func (s *fileBlobStore) Upload(ctx context.Context, name, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUploadingBlob, err)
	}
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: invalid blob name %q", ErrUploadingBlob, name)
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUploadingBlob, err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%w: %w", ErrUploadingBlob, err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUploadingBlob, err)
	}
	if err = os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		s.logger.Err(err).Str("func", "*fileBlobStore.Upload").Str("name", name).Msg("error storing blob")
		return "", fmt.Errorf("%w: %w", ErrUploadingBlob, err)
	}

	return s.publicURL + "/" + url.PathEscape(name), nil
}
