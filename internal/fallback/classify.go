// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fallback

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/MKhiriev/report-desk/internal/store"
)

// Class is the failure class of an error returned by a remote call.
type Class int

const (
	// ClassNone means the call succeeded.
	ClassNone Class = iota
	// ClassCaller marks errors the caller must handle.
	ClassCaller
	// ClassNetwork marks unreachable or timed out backends.
	ClassNetwork
	// ClassAuth marks rejected credentials.
	ClassAuth
	// ClassPermission marks denied access.
	ClassPermission
	// ClassUnknown marks every other failure.
	ClassUnknown
)

func (c Class) String() string {
	switch c {
	case ClassNone:
		return "none"
	case ClassCaller:
		return "caller"
	case ClassNetwork:
		return "network"
	case ClassAuth:
		return "auth"
	case ClassPermission:
		return "permission"
	}
	return "unknown"
}

// Propagator is implemented by errors that must reach the caller instead of
// being absorbed.
type Propagator interface {
	error
	Propagates() bool
}

// networkIndicators are message fragments that mark an error as a
// connectivity problem when no typed signal is available.
var networkIndicators = []string{
	"network",
	"offline",
	"unavailable",
	"backend",
	"connection refused",
	"timeout",
}

// Classify returns the failure class of err.
func Classify(err error) Class {
	if err == nil {
		return ClassNone
	}

	var p Propagator
	if errors.As(err, &p) && p.Propagates() {
		return ClassCaller
	}

	switch {
	case errors.Is(err, store.ErrUnauthenticated):
		return ClassAuth
	case errors.Is(err, store.ErrPermissionDenied):
		return ClassPermission
	case isNetworkError(err):
		return ClassNetwork
	}

	return ClassUnknown
}

func isNetworkError(err error) bool {
	if errors.Is(err, store.ErrUnavailable) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, indicator := range networkIndicators {
		if strings.Contains(msg, indicator) {
			return true
		}
	}
	return false
}
