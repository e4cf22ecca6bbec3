// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/report-desk/internal/validators"
	"github.com/MKhiriev/report-desk/models"
)

// ReportValidationService rejects invalid input before it reaches the
// wrapped ReportService.
type ReportValidationService struct {
	ReportService
	validator validators.Validator
}

func NewReportValidationService(validator validators.Validator) ReportServiceWrapper {
	return &ReportValidationService{validator: validator}
}

func (v *ReportValidationService) Wrap(inner ReportService) ReportService {
	v.ReportService = inner
	return v
}

func (v *ReportValidationService) Submit(ctx context.Context, report models.NewReport) (models.Report, error) {
	if err := validate(ctx, v.validator, report); err != nil {
		return models.Report{}, err
	}
	return v.ReportService.Submit(ctx, report)
}

func (v *ReportValidationService) Get(ctx context.Context, id string) (models.Report, error) {
	if err := requireID(id); err != nil {
		return models.Report{}, err
	}
	return v.ReportService.Get(ctx, id)
}

func (v *ReportValidationService) ListAll(ctx context.Context, status *models.ReportStatus) ([]models.ReportWithUser, error) {
	if status != nil {
		if err := validate(ctx, v.validator, *status); err != nil {
			return nil, err
		}
	}
	return v.ReportService.ListAll(ctx, status)
}

func (v *ReportValidationService) AddResponse(ctx context.Context, id, text, developerName string) (bool, error) {
	if err := requireID(id); err != nil {
		return false, err
	}
	if err := validate(ctx, v.validator, validators.ResponseText(text)); err != nil {
		return false, err
	}
	return v.ReportService.AddResponse(ctx, id, text, developerName)
}

func (v *ReportValidationService) Resolve(ctx context.Context, id string) (bool, error) {
	if err := requireID(id); err != nil {
		return false, err
	}
	return v.ReportService.Resolve(ctx, id)
}

func (v *ReportValidationService) UpdateStatus(ctx context.Context, id string, status models.ReportStatus) (bool, error) {
	if err := requireID(id); err != nil {
		return false, err
	}
	if err := validate(ctx, v.validator, status); err != nil {
		return false, err
	}
	return v.ReportService.UpdateStatus(ctx, id, status)
}

func (v *ReportValidationService) MarkViewed(ctx context.Context, id string) (bool, error) {
	if err := requireID(id); err != nil {
		return false, err
	}
	return v.ReportService.MarkViewed(ctx, id)
}

// AdminValidationService rejects invalid input before it reaches the wrapped
// AdminService.
type AdminValidationService struct {
	AdminService
	validator validators.Validator
}

func NewAdminValidationService(validator validators.Validator) AdminServiceWrapper {
	return &AdminValidationService{validator: validator}
}

func (v *AdminValidationService) Wrap(inner AdminService) AdminService {
	v.AdminService = inner
	return v
}

func (v *AdminValidationService) ApproveBusiness(ctx context.Context, id string) (bool, error) {
	if err := requireID(id); err != nil {
		return false, err
	}
	return v.AdminService.ApproveBusiness(ctx, id)
}

func (v *AdminValidationService) BanUser(ctx context.Context, id string) (bool, error) {
	if err := requireID(id); err != nil {
		return false, err
	}
	return v.AdminService.BanUser(ctx, id)
}

func (v *AdminValidationService) UpdateSettings(ctx context.Context, update models.SettingsUpdate) (bool, error) {
	if err := validate(ctx, v.validator, update); err != nil {
		return false, err
	}
	return v.AdminService.UpdateSettings(ctx, update)
}

// validate runs validator on obj and converts rule violations to
// ValidationError.
func validate(ctx context.Context, validator validators.Validator, obj any) error {
	err := validator.Validate(ctx, obj)
	if err == nil {
		return nil
	}

	var fieldErr *validators.FieldError
	if errors.As(err, &fieldErr) {
		return &ValidationError{Field: fieldErr.Field, Reason: fieldErr.Reason}
	}
	return fmt.Errorf("validating %T: %w", obj, err)
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return &ValidationError{Field: "id", Reason: "must not be empty"}
	}
	return nil
}
