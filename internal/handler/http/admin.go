// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/report-desk/internal/utils"
	"github.com/MKhiriev/report-desk/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.AdminService.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, "*Handler.listUsers", err)
		return
	}

	utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) banUser(w http.ResponseWriter, r *http.Request) {
	ok, err := h.services.AdminService.BanUser(r.Context(), chi.URLParam(r, "id"))
	writeResult(w, r, "*Handler.banUser", ok, err)
}

func (h *Handler) listBusinesses(w http.ResponseWriter, r *http.Request) {
	businesses, err := h.services.AdminService.ListBusinesses(r.Context())
	if err != nil {
		writeError(w, r, "*Handler.listBusinesses", err)
		return
	}

	utils.WriteJSON(w, businesses, http.StatusOK)
}

func (h *Handler) approveBusiness(w http.ResponseWriter, r *http.Request) {
	ok, err := h.services.AdminService.ApproveBusiness(r.Context(), chi.URLParam(r, "id"))
	writeResult(w, r, "*Handler.approveBusiness", ok, err)
}

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.services.AdminService.GetSettings(r.Context())
	if err != nil {
		writeError(w, r, "*Handler.getSettings", err)
		return
	}

	utils.WriteJSON(w, settings, http.StatusOK)
}

func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	var update models.SettingsUpdate
	if err := utils.ReadJSON(r, &update); err != nil {
		writeError(w, r, "*Handler.updateSettings", fmt.Errorf("%w: %w", ErrInvalidBody, err))
		return
	}

	ok, err := h.services.AdminService.UpdateSettings(r.Context(), update)
	writeResult(w, r, "*Handler.updateSettings", ok, err)
}
