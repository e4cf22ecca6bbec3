// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoServersAreCreated is returned when neither the HTTP API nor the
// health endpoint has a handler to serve.
var errNoServersAreCreated = errors.New("server: neither http nor grpc handler is configured")
