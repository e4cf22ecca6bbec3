// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by document and blob stores to signal well-known
// failure conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNotFound is returned when the addressed document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrAlreadyExists is returned by Create when the id is already taken.
	ErrAlreadyExists = errors.New("document already exists")

	// ErrUnavailable is returned when the backend cannot be reached: the
	// connection was refused or dropped, the server is starting up or
	// overloaded, or the call timed out.
	ErrUnavailable = errors.New("document store unavailable")

	// ErrUnauthenticated is returned when the backend rejected the credentials.
	ErrUnauthenticated = errors.New("document store unauthenticated")

	// ErrPermissionDenied is returned when the credentials are valid but lack
	// the rights for the operation.
	ErrPermissionDenied = errors.New("document store permission denied")

	// ErrUnsupportedDSN is returned by the store factory for an unknown scheme.
	ErrUnsupportedDSN = errors.New("unsupported document store dsn")
)

// Low-level operation errors. These are wrapped together with one of the
// sentinels above when a backend-level operation fails.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing an INSERT or UPDATE fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRows is returned when scanning document rows fails.
	ErrScanningRows = errors.New("failed to scan document rows")

	// ErrEncodingDocument is returned when a document cannot be serialized.
	ErrEncodingDocument = errors.New("failed to encode document")

	// ErrDecodingDocument is returned by Snapshot.DataTo when the stored
	// document does not fit the destination.
	ErrDecodingDocument = errors.New("failed to decode document")

	// ErrUploadingBlob is returned when a blob store write fails.
	ErrUploadingBlob = errors.New("failed to upload blob")
)
