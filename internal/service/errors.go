// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/report-desk/models"
)

var (
	ErrScreenshotsDisabled = errors.New("screenshot uploads are disabled")
)

// ValidationError reports input rejected before any store call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Propagates marks the error as one the caller must handle.
func (e *ValidationError) Propagates() bool { return true }

// NotFoundError reports a document absent from its collection.
type NotFoundError struct {
	Collection string
	ID         string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s/%s not found", e.Collection, e.ID)
}

// Propagates marks the error as one the caller must handle.
func (e *NotFoundError) Propagates() bool { return true }

// UploadError reports a failed screenshot upload. Nothing is persisted when
// it is returned.
type UploadError struct {
	Name string
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("uploading %s: %v", e.Name, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// Propagates marks the error as one the caller must handle.
func (e *UploadError) Propagates() bool { return true }

// InvalidTransitionError reports a status change the lifecycle forbids.
type InvalidTransitionError struct {
	From models.ReportStatus
	To   models.ReportStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move report from %s to %s", e.From, e.To)
}

// Propagates marks the error as one the caller must handle.
func (e *InvalidTransitionError) Propagates() bool { return true }
