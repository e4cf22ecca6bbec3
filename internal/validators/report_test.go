// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/MKhiriev/report-desk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validReport() models.NewReport {
	return models.NewReport{
		UserID:      "u1",
		Type:        models.ReportTypeBug,
		Title:       "Crash on login",
		Description: "The app crashes when I press the login button.",
	}
}

func requireFieldError(t *testing.T, err error, field string) *FieldError {
	t.Helper()
	var fe *FieldError
	require.True(t, errors.As(err, &fe), "expected *FieldError, got %v", err)
	assert.Equal(t, field, fe.Field)
	return fe
}

// ── NewReport ────────────────────────────────────────────────────────────────

func TestValidate_NewReport(t *testing.T) {
	v := NewReportValidator()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(r *models.NewReport)
		field  string
	}{
		{name: "valid", mutate: func(r *models.NewReport) {}},
		{name: "blank title", mutate: func(r *models.NewReport) { r.Title = "   " }, field: FieldTitle},
		{name: "title of 100 runes", mutate: func(r *models.NewReport) { r.Title = strings.Repeat("é", 100) }},
		{name: "title too long", mutate: func(r *models.NewReport) { r.Title = strings.Repeat("a", 101) }, field: FieldTitle},
		{name: "padded title within limit", mutate: func(r *models.NewReport) { r.Title = "  " + strings.Repeat("a", 100) + "  " }},
		{name: "short description", mutate: func(r *models.NewReport) { r.Description = "too short" }, field: FieldDescription},
		{name: "description padded to ten", mutate: func(r *models.NewReport) { r.Description = "   123456789   " }, field: FieldDescription},
		{name: "description of exactly ten", mutate: func(r *models.NewReport) { r.Description = "0123456789" }},
		{name: "unknown type", mutate: func(r *models.NewReport) { r.Type = "question" }, field: FieldType},
		{name: "empty type", mutate: func(r *models.NewReport) { r.Type = "" }, field: FieldType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validReport()
			tt.mutate(&r)

			err := v.Validate(ctx, r)
			if tt.field == "" {
				require.NoError(t, err)
				return
			}
			requireFieldError(t, err, tt.field)
		})
	}
}

func TestValidate_NewReportPointer(t *testing.T) {
	r := validReport()
	r.Title = ""

	err := NewReportValidator().Validate(context.Background(), &r)
	fe := requireFieldError(t, err, FieldTitle)
	assert.Equal(t, "must not be empty", fe.Reason)
	assert.Equal(t, "title must not be empty", fe.Error())
}

func TestValidate_NewReportReasons(t *testing.T) {
	v := NewReportValidator()

	r := validReport()
	r.Type = "question"
	fe := requireFieldError(t, v.Validate(context.Background(), r), FieldType)
	assert.Equal(t, "must be one of bug, feature, feedback, support", fe.Reason)

	r = validReport()
	r.Title = strings.Repeat("a", 101)
	fe = requireFieldError(t, v.Validate(context.Background(), r), FieldTitle)
	assert.Equal(t, "must be at most 100 characters", fe.Reason)
}

func TestValidate_NewReportTrimsBeforeChecking(t *testing.T) {
	v := NewReportValidator()

	r := validReport()
	r.Description = "   short    "
	requireFieldError(t, v.Validate(context.Background(), r), FieldDescription)

	r = validReport()
	r.Title = " \t "
	fe := requireFieldError(t, v.Validate(context.Background(), r), FieldTitle)
	assert.Equal(t, "must not be empty", fe.Reason)
}

// ── SettingsUpdate ───────────────────────────────────────────────────────────

func TestValidate_SettingsUpdate(t *testing.T) {
	v := NewReportValidator()
	ctx := context.Background()

	on := true
	fr := models.LanguageFrench
	de := models.Language("de")

	require.NoError(t, v.Validate(ctx, models.SettingsUpdate{MaintenanceMode: &on}))
	require.NoError(t, v.Validate(ctx, &models.SettingsUpdate{DefaultLanguage: &fr}))

	requireFieldError(t, v.Validate(ctx, models.SettingsUpdate{}), FieldSettings)

	fe := requireFieldError(t, v.Validate(ctx, models.SettingsUpdate{DefaultLanguage: &de}), FieldLanguage)
	assert.Equal(t, "must be en or fr", fe.Reason)
}

// ── Status and response text ─────────────────────────────────────────────────

func TestValidate_Status(t *testing.T) {
	v := NewReportValidator()

	for _, s := range models.ReportStatuses {
		require.NoError(t, v.Validate(context.Background(), s))
	}
	requireFieldError(t, v.Validate(context.Background(), models.ReportStatus("archived")), FieldStatus)
}

func TestValidate_ResponseText(t *testing.T) {
	v := NewReportValidator()

	require.NoError(t, v.Validate(context.Background(), ResponseText("Fixed in 1.2")))
	requireFieldError(t, v.Validate(context.Background(), ResponseText(" \n\t ")), FieldText)
}

func TestValidate_UnsupportedType(t *testing.T) {
	err := NewReportValidator().Validate(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
