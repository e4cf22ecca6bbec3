// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// ErrorClassificator maps a driver error onto the sentinel errors of this
// package. The returned error wraps both the sentinel and the original error;
// unrecognised errors are returned unchanged.
type ErrorClassificator interface {
	Classify(err error) error
}

// PostgresErrorClassifier implements [ErrorClassificator] for PostgreSQL.
// It inspects the pgconn error code returned by the pgx driver.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier] ready for use.
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator].
func (c *PostgresErrorClassifier) Classify(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if sentinel := ClassifyPgError(pgErr); sentinel != nil {
			return fmt.Errorf("%w: %w", sentinel, err)
		}
		return err
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return classifyTransportError(err)
}

// ClassifyPgError maps a *pgconn.PgError to a sentinel error based on the
// PostgreSQL error code, or nil when the code carries no special meaning.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
//
// Unavailable:
//   - Class 08: connection exceptions
//   - Class 53: insufficient resources
//   - 57P01, 57P02, 57P03: shutdown in progress, cannot connect now
//
// Unauthenticated: 28000, 28P01.
// Permission denied: 42501.
// Already exists: 23505.
func ClassifyPgError(pgErr *pgconn.PgError) error {
	switch pgErr.Code {
	// class 08: connection exceptions
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		pgerrcode.SQLClientUnableToEstablishSQLConnection,
		pgerrcode.SQLServerRejectedEstablishmentOfSQLConnection:
		return ErrUnavailable

	// class 53: insufficient resources
	case pgerrcode.InsufficientResources,
		pgerrcode.TooManyConnections:
		return ErrUnavailable

	// class 57: operator intervention
	case pgerrcode.AdminShutdown,
		pgerrcode.CrashShutdown,
		pgerrcode.CannotConnectNow:
		return ErrUnavailable

	// class 28: invalid authorization specification
	case pgerrcode.InvalidAuthorizationSpecification,
		pgerrcode.InvalidPassword:
		return ErrUnauthenticated

	case pgerrcode.InsufficientPrivilege:
		return ErrPermissionDenied

	case pgerrcode.UniqueViolation:
		return ErrAlreadyExists
	}

	return nil
}

// SQLiteErrorClassifier implements [ErrorClassificator] for go-sqlite3.
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier] ready for use.
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify implements [ErrorClassificator].
func (c *SQLiteErrorClassifier) Classify(err error) error {
	if err == nil {
		return nil
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code {
		case sqlite3.ErrConstraint:
			if liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
				liteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
				return fmt.Errorf("%w: %w", ErrAlreadyExists, err)
			}
		case sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrCantOpen, sqlite3.ErrIoErr:
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		case sqlite3.ErrAuth:
			return fmt.Errorf("%w: %w", ErrUnauthenticated, err)
		case sqlite3.ErrPerm, sqlite3.ErrReadonly:
			return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
		}
		return err
	}

	return classifyTransportError(err)
}

// classifyTransportError recognises driver-independent connectivity failures.
func classifyTransportError(err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr):
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}
