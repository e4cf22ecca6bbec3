// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the HTTP API and the gRPC health service of
// report-desk until a stop signal arrives, then shuts both down gracefully.
package server
