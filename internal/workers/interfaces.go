// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the background jobs of the server next to its
// listeners.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is done or the job fails;
// returning because ctx is done is not a failure.
type Worker interface {
	Run(ctx context.Context) error
}
