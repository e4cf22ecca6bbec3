// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import "errors"

var (
	// ErrNotApplied is returned when a change was absorbed by the fallback
	// policy because the store could not be reached.
	ErrNotApplied = errors.New("change not applied: store unavailable")

	// ErrUnavailable is returned when a read fell back to an empty result.
	ErrUnavailable = errors.New("store unavailable")

	// ErrPasswordsDiffer is returned by hash-password when the confirmation
	// does not match.
	ErrPasswordsDiffer = errors.New("passwords do not match")

	ErrEmptyPassword = errors.New("empty password")
)
