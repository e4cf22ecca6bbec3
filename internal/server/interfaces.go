// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server is the lifecycle contract of the transport servers in this package.
type Server interface {
	// RunServer serves requests and blocks until ctx is done or serving
	// fails. A graceful stop is not an error.
	RunServer(ctx context.Context) error

	// Shutdown stops the server. In-flight requests get until ctx is done.
	Shutdown(ctx context.Context) error
}
