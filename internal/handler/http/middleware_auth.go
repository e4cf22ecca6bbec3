// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/report-desk/internal/app"
	"github.com/MKhiriev/report-desk/internal/logger"
	"github.com/MKhiriev/report-desk/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based admin authentication.
//
// It extracts the bearer token from the "Authorization" header, verifies its
// signature, issuer and expiry, and stores the admin login in the request
// context under [utils.AdminLoginCtxKey] before delegating to the next
// handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized when the header
// is absent, is not a bearer token, or carries an invalid or expired token.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, "*Handler.auth", ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Str("func", "*Handler.auth").Send()
			utils.WriteJSON(w, errorResponse{Error: app.MsgTokenIsExpiredOrInvalid}, http.StatusUnauthorized)
			return
		}

		token, err := utils.ValidateAndParseJWTToken(tokenString, h.app.TokenSignKey, h.app.TokenIssuer)
		if err != nil {
			log.Err(err).Str("func", "*Handler.auth").Msg("error occurred during parsing token")
			utils.WriteJSON(w, errorResponse{Error: app.MsgTokenIsExpiredOrInvalid}, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), utils.AdminLoginCtxKey, token.Login)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
