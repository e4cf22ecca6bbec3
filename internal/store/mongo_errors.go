// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

// MongoDB server error codes.
// See https://www.mongodb.com/docs/manual/reference/error-codes/.
const (
	mongoCodeUnauthorized         = 13
	mongoCodeAuthenticationFailed = 18
	mongoCodeHostUnreachable      = 6
	mongoCodeHostNotFound         = 7
	mongoCodeNotWritablePrimary   = 10107
	mongoCodeShutdownInProgress   = 91
)

// classifyMongoError wraps err with the matching sentinel of this package.
// Unrecognised errors are returned unchanged.
func classifyMongoError(err error) error {
	if err == nil {
		return nil
	}

	var selectionErr topology.ServerSelectionError
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) ||
		errors.As(err, &selectionErr) || errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) {
		switch {
		case serverErr.HasErrorCode(mongoCodeAuthenticationFailed):
			return fmt.Errorf("%w: %w", ErrUnauthenticated, err)
		case serverErr.HasErrorCode(mongoCodeUnauthorized):
			return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
		case serverErr.HasErrorCode(mongoCodeHostUnreachable),
			serverErr.HasErrorCode(mongoCodeHostNotFound),
			serverErr.HasErrorCode(mongoCodeNotWritablePrimary),
			serverErr.HasErrorCode(mongoCodeShutdownInProgress):
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
	}

	return err
}
