// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/MKhiriev/report-desk/models"
	"github.com/go-playground/validator/v10"
)

// Field names reported in FieldError. They match the JSON names of the
// validated values.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldType        = "type"
	FieldText        = "text"
	FieldStatus      = "status"
	FieldSettings    = "settings"
	FieldLanguage    = "defaultLanguage"
)

// ResponseText is the free text of a developer response.
type ResponseText string

// ReportValidator implements the Validator interface for report submissions,
// developer responses, status values and settings updates. Struct rules are
// declared as `validate` tags on the models and enforced with
// go-playground/validator.
type ReportValidator struct {
	validate *validator.Validate
}

// NewReportValidator constructs a ReportValidator with the report_type and
// language rules registered.
func NewReportValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// registration only fails for empty tags or nil functions
	_ = v.RegisterValidation("report_type", func(fl validator.FieldLevel) bool {
		return models.ReportType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("language", func(fl validator.FieldLevel) bool {
		return models.Language(fl.Field().String()).Valid()
	})

	return &ReportValidator{validate: v}
}

// Validate dispatches validation on the dynamic type of obj.
//
// Supported types:
//   - models.NewReport / *models.NewReport (title, description, type)
//   - models.SettingsUpdate / *models.SettingsUpdate
//   - models.ReportStatus
//   - ResponseText
//
// Returns ErrUnsupportedType for anything else and a *FieldError when a rule
// is broken.
func (v *ReportValidator) Validate(ctx context.Context, obj any) error {
	switch value := obj.(type) {
	case models.NewReport:
		return v.validateNewReport(value)
	case *models.NewReport:
		return v.validateNewReport(*value)

	case models.SettingsUpdate:
		return v.validateSettingsUpdate(value)
	case *models.SettingsUpdate:
		return v.validateSettingsUpdate(*value)

	case models.ReportStatus:
		if !value.Valid() {
			return &FieldError{Field: FieldStatus, Reason: fmt.Sprintf("%q is not a known status", value)}
		}
		return nil

	case ResponseText:
		if strings.TrimSpace(string(value)) == "" {
			return &FieldError{Field: FieldText, Reason: "must not be empty"}
		}
		return nil

	default:
		return ErrUnsupportedType
	}
}

// validateNewReport checks the trimmed title and description and the type.
func (v *ReportValidator) validateNewReport(r models.NewReport) error {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	return translate(v.validate.Struct(r))
}

func (v *ReportValidator) validateSettingsUpdate(u models.SettingsUpdate) error {
	if u.Empty() {
		return &FieldError{Field: FieldSettings, Reason: "at least one field must be set"}
	}
	return translate(v.validate.Struct(u))
}

// translate turns the first validator.FieldError into a *FieldError.
func translate(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validation failed: %w", err)
	}

	fe := fieldErrs[0]
	return &FieldError{Field: fe.Field(), Reason: reason(fe)}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "report_type":
		types := make([]string, 0, len(models.ReportTypes))
		for _, t := range models.ReportTypes {
			types = append(types, string(t))
		}
		return "must be one of " + strings.Join(types, ", ")
	case "language":
		return "must be en or fr"
	}
	return "is invalid (" + fe.Tag() + ")"
}
