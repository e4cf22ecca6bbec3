// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/report-desk/internal/fallback"
)

const noticeHeader = "X-Notice"

// withNotices attaches a fallback.Collector to the request context and
// copies the collected notices into X-Notice headers when the response
// header is written.
func (h *Handler) withNotices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		collector := &fallback.Collector{}
		r = r.WithContext(fallback.WithCollector(r.Context(), collector))

		nw := &noticeWriter{ResponseWriter: w, collector: collector}
		next.ServeHTTP(nw, r)
	})
}

type noticeWriter struct {
	http.ResponseWriter
	collector   *fallback.Collector
	wroteHeader bool
}

func (w *noticeWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		for _, n := range w.collector.Notices() {
			w.Header().Add(noticeHeader, n.String())
		}
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *noticeWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}
