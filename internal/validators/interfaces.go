// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks report submissions, status changes and
// settings updates before they reach the document store.
//
// Failures are returned as [FieldError] values naming the offending
// field, so transports can echo it back to the caller.
package validators

import "context"

// Validator checks a value and returns a *FieldError for the first broken
// rule.
type Validator interface {
	Validate(ctx context.Context, value any) error
}
