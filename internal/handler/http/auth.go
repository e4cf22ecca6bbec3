// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/MKhiriev/report-desk/internal/logger"
	"github.com/MKhiriev/report-desk/internal/utils"
	"github.com/MKhiriev/report-desk/models"
)

// login checks the admin credentials against the configured login and bcrypt
// hash and returns a signed token in the "Authorization" header.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var creds models.AdminCredentials
	if err := utils.ReadJSON(r, &creds); err != nil {
		writeError(w, r, "*Handler.login", fmt.Errorf("%w: %w", ErrInvalidBody, err))
		return
	}

	loginMatches := subtle.ConstantTimeCompare([]byte(creds.Login), []byte(h.app.AdminLogin)) == 1
	passwordErr := utils.CheckPassword(h.app.AdminPasswordHash, creds.Password)
	if !loginMatches || passwordErr != nil {
		log.Warn().Str("login", creds.Login).Msg("admin login rejected")
		writeError(w, r, "*Handler.login", ErrInvalidCredentials)
		return
	}

	token, err := utils.GenerateJWTToken(h.app.TokenIssuer, creds.Login, h.app.TokenDuration, h.app.TokenSignKey)
	if err != nil {
		writeError(w, r, "*Handler.login", err)
		return
	}

	log.Info().Str("login", creds.Login).Msg("admin logged in")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	w.WriteHeader(http.StatusOK)
}
