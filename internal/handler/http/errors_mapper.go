// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/report-desk/internal/app"
	"github.com/MKhiriev/report-desk/internal/logger"
	"github.com/MKhiriev/report-desk/internal/service"
	"github.com/MKhiriev/report-desk/internal/utils"
)

var errorStatusMap = map[error]int{
	ErrEmptyAuthorizationHeader: http.StatusUnauthorized,
	ErrInvalidCredentials:       http.StatusUnauthorized,
	ErrInvalidBody:              http.StatusBadRequest,
	ErrStoreUnavailable:         http.StatusServiceUnavailable,

	utils.ErrPasswordMismatch: http.StatusUnauthorized,
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func statusFromError(err error) int {
	var (
		validationErr *service.ValidationError
		notFoundErr   *service.NotFoundError
		transitionErr *service.InvalidTransitionError
		uploadErr     *service.UploadError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &transitionErr):
		return http.StatusConflict
	case errors.As(err, &uploadErr):
		return http.StatusBadGateway
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and writes it as a JSON error body. Internal errors
// are not echoed to the client.
func writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	body := errorResponse{Error: err.Error()}
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		body.Field = validationErr.Field
	}

	switch status {
	case http.StatusInternalServerError:
		log.Err(err).Str("func", funcName).Msg("unexpected error")
		body.Error = app.MsgInternalServerError
	case http.StatusServiceUnavailable:
		log.Warn().Err(err).Str("func", funcName).Msg("change not applied")
		body.Error = app.MsgStoreUnavailable
	default:
		log.Debug().Err(err).Str("func", funcName).Int("status", status).Msg("request rejected")
	}

	utils.WriteJSON(w, body, status)
}
