// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP transport layer of report-desk.
//
// It exposes route wiring, request handlers, and middleware for the JSON API.
// Cross-cutting concerns such as admin authentication, maintenance mode,
// request tracing, access logging, response compression and the X-Notice
// headers carrying absorbed store failures are handled in this package
// before requests are delegated to the service layer.
package http
