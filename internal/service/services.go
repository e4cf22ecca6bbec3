// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/report-desk/internal/config"
	"github.com/MKhiriev/report-desk/internal/fallback"
	"github.com/MKhiriev/report-desk/internal/logger"
	"github.com/MKhiriev/report-desk/internal/store"
	"github.com/MKhiriev/report-desk/internal/utils"
	"github.com/MKhiriev/report-desk/internal/validators"
)

type Services struct {
	ReportService ReportService
	AdminService  AdminService
}

// NewServices builds the validated report and admin services over storages.
// policy receives the notices of absorbed failures.
func NewServices(storages *store.Storages, cfg config.Reports, policy fallback.Policy, logger *logger.Logger) *Services {
	validator := validators.NewReportValidator()
	if policy.Logger == nil {
		policy.Logger = logger
	}

	reports := NewReportService(storages.Documents, storages.Blobs, utils.NewUUIDGenerator(), cfg, policy, logger)
	admin := NewAdminService(storages.Documents, policy, logger)

	return &Services{
		ReportService: NewReportValidationService(validator).Wrap(reports),
		AdminService:  NewAdminValidationService(validator).Wrap(admin),
	}
}
