// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the handlers and the authentication middleware.
// Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidCredentials is returned by the login handler when the login
	// or the password does not match the configured admin account.
	ErrInvalidCredentials = errors.New("invalid admin credentials")

	// ErrInvalidBody is returned when a request body cannot be decoded.
	ErrInvalidBody = errors.New("invalid request body")

	// ErrStoreUnavailable marks a change that was not applied because the
	// document store failure was absorbed.
	ErrStoreUnavailable = errors.New("document store unavailable")
)
