// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/report-desk/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock -exclude_interfaces=ReportServiceWrapper,AdminServiceWrapper

// Collection names and fixed document ids shared by every backend.
const (
	CollectionReports    = "reports"
	CollectionUsers      = "users"
	CollectionBusinesses = "businesses"
	CollectionSettings   = "systemSettings"

	SettingsDocumentID = "settings"

	defaultDeveloperName = "Admin"
)

// ReportService drives the report lifecycle. Remote store failures are
// absorbed: reads return an empty fallback and mutations report false with
// a nil error. Only ValidationError, NotFoundError, UploadError and
// InvalidTransitionError reach the caller.
type ReportService interface {
	Submit(ctx context.Context, report models.NewReport) (models.Report, error)
	Get(ctx context.Context, id string) (models.Report, error)

	ListForUser(ctx context.Context, userID string) ([]models.Report, error)
	ListAll(ctx context.Context, status *models.ReportStatus) ([]models.ReportWithUser, error)

	AddResponse(ctx context.Context, id, text, developerName string) (bool, error)
	Resolve(ctx context.Context, id string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status models.ReportStatus) (bool, error)
	MarkViewed(ctx context.Context, id string) (bool, error)

	Statistics(ctx context.Context) (models.ReportStats, error)
}

// AdminService manages users, businesses and the system settings record,
// with the same failure absorption as ReportService.
type AdminService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	ListBusinesses(ctx context.Context) ([]models.Business, error)

	ApproveBusiness(ctx context.Context, id string) (bool, error)
	BanUser(ctx context.Context, id string) (bool, error)

	GetSettings(ctx context.Context) (models.SystemSettings, error)
	UpdateSettings(ctx context.Context, update models.SettingsUpdate) (bool, error)
}

// ReportServiceWrapper defines middleware composition for ReportService.
// Implementations wrap an existing ReportService to add behavior such as
// validation.
type ReportServiceWrapper interface {
	Wrap(ReportService) ReportService
}

// AdminServiceWrapper defines middleware composition for AdminService.
type AdminServiceWrapper interface {
	Wrap(AdminService) AdminService
}
