// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFile_YAML(t *testing.T) {
	path := writeTempFile(t, "config-*.yaml", `
app:
  token_sign_key: secret
  token_duration: 2h
  admin_login: root
storage:
  db:
    dsn: mongodb://localhost:27017
    name: desk
  blob:
    backend: s3
    s3:
      bucket: screenshots
      region: eu-west-1
      path_style: true
server:
  http_address: ":8080"
  request_timeout: 1000000000
adapter:
  request_timeout: 5s
reports:
  permissive_status: true
`)

	cfg, err := parseFile(path)

	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.App.TokenSignKey)
	assert.Equal(t, 2*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "root", cfg.App.AdminLogin)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Storage.DB.DSN)
	assert.Equal(t, "desk", cfg.Storage.DB.Database)
	assert.Equal(t, "screenshots", cfg.Storage.Blob.S3.Bucket)
	assert.True(t, cfg.Storage.Blob.S3.PathStyle)
	assert.Equal(t, ":8080", cfg.Server.HTTPAddress)
	assert.Equal(t, time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.Adapter.RequestTimeout)
	assert.True(t, cfg.Reports.PermissiveStatus)
}

func TestParseFile_JSON(t *testing.T) {
	path := writeTempFile(t, "config-*.json", `{"app": {"version": "9.9.9", "token_duration": "30m"}}`)

	cfg, err := parseFile(path)

	require.NoError(t, err)
	assert.Equal(t, "9.9.9", cfg.App.Version)
	assert.Equal(t, 30*time.Minute, cfg.App.TokenDuration)
}

func TestParseFile_InvalidDuration(t *testing.T) {
	path := writeTempFile(t, "config-*.yaml", "app:\n  token_duration: forever\n")

	_, err := parseFile(path)

	assert.Error(t, err)
}

func TestParseFile_Malformed(t *testing.T) {
	path := writeTempFile(t, "config-*.yaml", "app: [unclosed\n")

	_, err := parseFile(path)

	assert.Error(t, err)
}
