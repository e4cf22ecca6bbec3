// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/report-desk/internal/app"
	"github.com/MKhiriev/report-desk/internal/logger"
	"github.com/MKhiriev/report-desk/internal/utils"
)

// maintenance rejects requests with 503 while the system settings have
// maintenance mode switched on. Unreadable settings fall back to the
// defaults, which keep the routes open.
func (h *Handler) maintenance(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		settings, err := h.services.AdminService.GetSettings(r.Context())
		if err != nil {
			writeError(w, r, "*Handler.maintenance", err)
			return
		}

		if settings.MaintenanceMode {
			logger.FromRequest(r).Debug().Str("uri", r.RequestURI).Msg("rejected during maintenance")
			w.Header().Set("Retry-After", "120")
			utils.WriteJSON(w, errorResponse{Error: app.MsgMaintenance}, http.StatusServiceUnavailable)
			return
		}

		next.ServeHTTP(w, r)
	})
}
