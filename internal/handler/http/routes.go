// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip, h.withNotices)

	router.Get("/api/version/", h.getServerVersion)
	router.Post("/api/admin/login", h.login)

	// public routes, closed while maintenance mode is on
	router.Group(func(r chi.Router) {
		r.Use(h.maintenance)
		r.Post("/api/reports", h.submitReport)
		r.Get("/api/users/{userID}/reports", h.listUserReports)
	})

	// admin routes
	router.Route("/api/admin", func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/reports", h.listReports)
		r.Get("/reports/stats", h.reportStatistics)
		r.Get("/reports/{id}", h.getReport)
		r.Post("/reports/{id}/responses", h.addResponse)
		r.Post("/reports/{id}/resolve", h.resolveReport)
		r.Put("/reports/{id}/status", h.updateReportStatus)
		r.Post("/reports/{id}/viewed", h.markReportViewed)

		r.Get("/users", h.listUsers)
		r.Post("/users/{id}/ban", h.banUser)

		r.Get("/businesses", h.listBusinesses)
		r.Post("/businesses/{id}/approve", h.approveBusiness)

		r.Get("/settings", h.getSettings)
		r.Patch("/settings", h.updateSettings)
	})

	if h.blob.Backend == "files" && h.blob.Dir != "" {
		router.Handle("/blobs/*", http.StripPrefix("/blobs/", http.FileServer(http.Dir(h.blob.Dir))))
	}

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
