// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

// Msg* constants are the human-readable strings written into HTTP response
// bodies and CLI output. Keeping them in one place keeps the wording of the
// API and the admin tool consistent.
const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidLoginPassword is returned when the admin credentials do not
	// match the configured login and password hash.
	MsgInvalidLoginPassword = "invalid login/password"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token is expired
	// or cannot be verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgMaintenance is returned by public routes while maintenance mode is on.
	MsgMaintenance = "service is under maintenance, please try again later"

	// MsgStoreUnavailable is returned when a change could not be applied
	// because the document store was unreachable. The request may be retried.
	MsgStoreUnavailable = "the change could not be saved, please try again later"

	// MsgReportNotFound is returned when the addressed report does not exist.
	MsgReportNotFound = "report not found"

	// MsgInvalidStatusFilter is returned for an unknown ?status= value.
	MsgInvalidStatusFilter = "unknown status filter"
)
