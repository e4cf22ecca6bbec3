// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/report-desk/internal/logger"
	"github.com/MKhiriev/report-desk/internal/utils"
	"github.com/MKhiriev/report-desk/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) submitReport(w http.ResponseWriter, r *http.Request) {
	var in models.NewReport
	if err := utils.ReadJSON(r, &in); err != nil {
		writeError(w, r, "*Handler.submitReport", fmt.Errorf("%w: %w", ErrInvalidBody, err))
		return
	}

	report, err := h.services.ReportService.Submit(r.Context(), in)
	if err != nil {
		writeError(w, r, "*Handler.submitReport", err)
		return
	}
	if report.ID == "" {
		writeError(w, r, "*Handler.submitReport", ErrStoreUnavailable)
		return
	}

	utils.WriteJSON(w, report, http.StatusCreated)
}

func (h *Handler) listUserReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.services.ReportService.ListForUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, r, "*Handler.listUserReports", err)
		return
	}

	utils.WriteJSON(w, reports, http.StatusOK)
}

func (h *Handler) listReports(w http.ResponseWriter, r *http.Request) {
	var status *models.ReportStatus
	if s := r.URL.Query().Get("status"); s != "" {
		filter := models.ReportStatus(s)
		status = &filter
	}

	reports, err := h.services.ReportService.ListAll(r.Context(), status)
	if err != nil {
		writeError(w, r, "*Handler.listReports", err)
		return
	}

	utils.WriteJSON(w, reports, http.StatusOK)
}

func (h *Handler) reportStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.services.ReportService.Statistics(r.Context())
	if err != nil {
		writeError(w, r, "*Handler.reportStatistics", err)
		return
	}

	utils.WriteJSON(w, stats, http.StatusOK)
}

func (h *Handler) getReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.services.ReportService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "*Handler.getReport", err)
		return
	}
	if report.ID == "" {
		writeError(w, r, "*Handler.getReport", ErrStoreUnavailable)
		return
	}

	utils.WriteJSON(w, report, http.StatusOK)
}

func (h *Handler) addResponse(w http.ResponseWriter, r *http.Request) {
	var req models.ResponseRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, r, "*Handler.addResponse", fmt.Errorf("%w: %w", ErrInvalidBody, err))
		return
	}

	ok, err := h.services.ReportService.AddResponse(r.Context(), chi.URLParam(r, "id"), req.Text, req.DeveloperName)
	writeResult(w, r, "*Handler.addResponse", ok, err)
}

func (h *Handler) resolveReport(w http.ResponseWriter, r *http.Request) {
	ok, err := h.services.ReportService.Resolve(r.Context(), chi.URLParam(r, "id"))
	writeResult(w, r, "*Handler.resolveReport", ok, err)
}

func (h *Handler) updateReportStatus(w http.ResponseWriter, r *http.Request) {
	var req models.StatusRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, r, "*Handler.updateReportStatus", fmt.Errorf("%w: %w", ErrInvalidBody, err))
		return
	}

	ok, err := h.services.ReportService.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	writeResult(w, r, "*Handler.updateReportStatus", ok, err)
}

func (h *Handler) markReportViewed(w http.ResponseWriter, r *http.Request) {
	ok, err := h.services.ReportService.MarkViewed(r.Context(), chi.URLParam(r, "id"))
	writeResult(w, r, "*Handler.markReportViewed", ok, err)
}

// writeResult answers a mutation: 200 when applied, 503 when the store
// failure was absorbed, the mapped status for propagated errors.
func writeResult(w http.ResponseWriter, r *http.Request, funcName string, ok bool, err error) {
	if err != nil {
		writeError(w, r, funcName, err)
		return
	}
	if !ok {
		utils.WriteJSON(w, models.OperationResult{OK: false}, http.StatusServiceUnavailable)
		return
	}

	if login, found := utils.GetAdminLoginFromContext(r.Context()); found {
		logger.FromRequest(r).Info().Str("func", funcName).Str("admin", login).Msg("admin change applied")
	}
	utils.WriteJSON(w, models.OperationResult{OK: true}, http.StatusOK)
}
