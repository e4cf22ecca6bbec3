// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/report-desk/internal/config"
	"github.com/MKhiriev/report-desk/internal/fallback"
	"github.com/MKhiriev/report-desk/internal/logger"
	"github.com/MKhiriev/report-desk/internal/store"
	"github.com/MKhiriev/report-desk/models"
)

type reportService struct {
	documents store.DocumentStore
	blobs     store.BlobStore
	ids       store.IDGenerator

	policy           fallback.Policy
	permissiveStatus bool
	now              func() time.Time

	logger *logger.Logger
}

// NewReportService returns a ReportService over documents. blobs may be nil,
// in which case submissions carrying a screenshot fail with an UploadError.
// ids generates response ids.
func NewReportService(documents store.DocumentStore, blobs store.BlobStore, ids store.IDGenerator, cfg config.Reports, policy fallback.Policy, logger *logger.Logger) ReportService {
	return &reportService{
		documents:        documents,
		blobs:            blobs,
		ids:              ids,
		policy:           policy,
		permissiveStatus: cfg.PermissiveStatus,
		now:              time.Now,
		logger:           logger,
	}
}

func (r *reportService) Submit(ctx context.Context, in models.NewReport) (models.Report, error) {
	return fallback.Do(ctx, r.policy, "submit report", func(ctx context.Context) (models.Report, error) {
		now := r.now().UTC()

		userID := strings.TrimSpace(in.UserID)
		if userID == "" {
			userID = models.AnonymousUserID
		}

		report := models.Report{
			UserID:      userID,
			UserName:    strings.TrimSpace(in.UserName),
			Type:        in.Type,
			Title:       strings.TrimSpace(in.Title),
			Description: strings.TrimSpace(in.Description),
			DeviceInfo:  in.DeviceInfo,
			Status:      models.StatusPending,
			Viewed:      false,
			Responses:   []models.Response{},
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if in.Screenshot != nil && len(in.Screenshot.Data) > 0 {
			url, err := r.uploadScreenshot(ctx, userID, now, in.Screenshot)
			if err != nil {
				return models.Report{}, err
			}
			report.ScreenshotURL = url
		}

		id, err := r.documents.Add(ctx, CollectionReports, report)
		if err != nil {
			if report.ScreenshotURL != "" {
				r.logger.Warn().Err(err).Str("func", "*reportService.Submit").
					Str("screenshot_url", report.ScreenshotURL).Msg("report not stored, screenshot left orphaned")
			}
			return models.Report{}, err
		}
		report.ID = id

		r.logger.Info().Str("func", "*reportService.Submit").
			Str("report_id", id).Str("type", string(report.Type)).Msg("report submitted")
		return report, nil
	}, models.Report{})
}

// uploadScreenshot stores the screenshot as report_<userId>_<epochMillis>.
func (r *reportService) uploadScreenshot(ctx context.Context, userID string, now time.Time, shot *models.Screenshot) (string, error) {
	name := fmt.Sprintf("report_%s_%d", blobSafe(userID), now.UnixMilli())
	if r.blobs == nil {
		return "", &UploadError{Name: name, Err: ErrScreenshotsDisabled}
	}

	contentType := shot.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := r.blobs.Upload(ctx, name, contentType, shot.Data)
	if err != nil {
		r.logger.Err(err).Str("func", "*reportService.uploadScreenshot").
			Str("name", name).Msg("screenshot upload failed")
		return "", &UploadError{Name: name, Err: err}
	}
	return url, nil
}

func (r *reportService) Get(ctx context.Context, id string) (models.Report, error) {
	return fallback.Do(ctx, r.policy, "get report", func(ctx context.Context) (models.Report, error) {
		return r.getReport(ctx, id)
	}, models.Report{})
}

func (r *reportService) ListForUser(ctx context.Context, userID string) ([]models.Report, error) {
	return fallback.Do(ctx, r.policy, "list user reports", func(ctx context.Context) ([]models.Report, error) {
		q := store.Query{}.Where("userId", userID).Order("createdAt", true)
		return r.queryReports(ctx, q)
	}, []models.Report{})
}

func (r *reportService) ListAll(ctx context.Context, status *models.ReportStatus) ([]models.ReportWithUser, error) {
	return fallback.Do(ctx, r.policy, "list reports", func(ctx context.Context) ([]models.ReportWithUser, error) {
		q := store.Query{}.Order("createdAt", true)
		if status != nil {
			q = q.Where("status", string(*status))
		}

		reports, err := r.queryReports(ctx, q)
		if err != nil {
			return nil, err
		}

		users := newUserCache(r.documents, r.logger)
		result := make([]models.ReportWithUser, 0, len(reports))
		for _, report := range reports {
			result = append(result, models.ReportWithUser{
				Report: report,
				User:   users.lookup(ctx, report.UserID),
			})
		}
		return result, nil
	}, []models.ReportWithUser{})
}

func (r *reportService) AddResponse(ctx context.Context, id, text, developerName string) (bool, error) {
	return fallback.Run(ctx, r.policy, "add response", func(ctx context.Context) error {
		report, err := r.getReport(ctx, id)
		if err != nil {
			return err
		}
		if !r.permissiveStatus && !models.CanTransition(report.Status, models.StatusResponded) {
			return &InvalidTransitionError{From: report.Status, To: models.StatusResponded}
		}

		developerName = strings.TrimSpace(developerName)
		if developerName == "" {
			developerName = defaultDeveloperName
		}

		now := r.now().UTC()
		response := models.Response{
			ID:            r.ids.Generate(),
			Text:          strings.TrimSpace(text),
			DeveloperName: developerName,
			CreatedAt:     now,
		}

		// read-modify-write: a response appended concurrently by another
		// writer between Get and Update is lost
		return r.update(ctx, id, map[string]any{
			"responses":         append(report.Responses, response),
			"status":            models.StatusResponded,
			"developerResponse": response.Text,
			"respondedAt":       now,
			"updatedAt":         now,
		})
	})
}

func (r *reportService) Resolve(ctx context.Context, id string) (bool, error) {
	return fallback.Run(ctx, r.policy, "resolve report", func(ctx context.Context) error {
		report, err := r.getReport(ctx, id)
		if err != nil {
			return err
		}
		if report.Status == models.StatusResolved {
			return nil
		}
		if !r.permissiveStatus && !models.CanTransition(report.Status, models.StatusResolved) {
			return &InvalidTransitionError{From: report.Status, To: models.StatusResolved}
		}

		now := r.now().UTC()
		return r.update(ctx, id, map[string]any{
			"status":     models.StatusResolved,
			"resolvedAt": now,
			"updatedAt":  now,
		})
	})
}

func (r *reportService) UpdateStatus(ctx context.Context, id string, status models.ReportStatus) (bool, error) {
	return fallback.Run(ctx, r.policy, "update report status", func(ctx context.Context) error {
		if !r.permissiveStatus {
			report, err := r.getReport(ctx, id)
			if err != nil {
				return err
			}
			if report.Status == status {
				return nil
			}
			if !models.CanTransition(report.Status, status) {
				return &InvalidTransitionError{From: report.Status, To: status}
			}
		}

		now := r.now().UTC()
		fields := map[string]any{
			"status":    status,
			"updatedAt": now,
		}
		if status == models.StatusResolved {
			fields["resolvedAt"] = now
		}
		return r.update(ctx, id, fields)
	})
}

func (r *reportService) MarkViewed(ctx context.Context, id string) (bool, error) {
	return fallback.Run(ctx, r.policy, "mark report viewed", func(ctx context.Context) error {
		return r.update(ctx, id, map[string]any{"viewed": true})
	})
}

func (r *reportService) Statistics(ctx context.Context) (models.ReportStats, error) {
	empty := models.ReportStats{ByType: map[models.ReportType]int{}}

	return fallback.Do(ctx, r.policy, "report statistics", func(ctx context.Context) (models.ReportStats, error) {
		reports, err := r.queryReports(ctx, store.Query{})
		if err != nil {
			return models.ReportStats{}, err
		}

		stats := models.ReportStats{ByType: make(map[models.ReportType]int, len(models.ReportTypes))}
		for _, report := range reports {
			stats.Count(report)
		}
		return stats, nil
	}, empty)
}

// getReport reads one report, mapping a missing document to NotFoundError.
func (r *reportService) getReport(ctx context.Context, id string) (models.Report, error) {
	snap, err := r.documents.Get(ctx, CollectionReports, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.Report{}, &NotFoundError{Collection: CollectionReports, ID: id}
	}
	if err != nil {
		return models.Report{}, err
	}

	var report models.Report
	if err = snap.DataTo(&report); err != nil {
		return models.Report{}, err
	}
	report.ID = snap.ID
	return report, nil
}

// queryReports runs q against the reports collection. Documents that cannot
// be decoded are logged and skipped.
func (r *reportService) queryReports(ctx context.Context, q store.Query) ([]models.Report, error) {
	snaps, err := r.documents.Query(ctx, CollectionReports, q)
	if err != nil {
		return nil, err
	}

	reports := make([]models.Report, 0, len(snaps))
	for _, snap := range snaps {
		var report models.Report
		if err = snap.DataTo(&report); err != nil {
			r.logger.Err(err).Str("func", "*reportService.queryReports").
				Str("report_id", snap.ID).Msg("skipping undecodable report")
			continue
		}
		report.ID = snap.ID
		reports = append(reports, report)
	}
	return reports, nil
}

func (r *reportService) update(ctx context.Context, id string, fields map[string]any) error {
	err := r.documents.Update(ctx, CollectionReports, id, fields)
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{Collection: CollectionReports, ID: id}
	}
	return err
}

// userCache resolves report owners, fetching each profile at most once.
type userCache struct {
	documents store.DocumentStore
	users     map[string]*models.User
	logger    *logger.Logger
}

func newUserCache(documents store.DocumentStore, logger *logger.Logger) *userCache {
	return &userCache{
		documents: documents,
		users:     make(map[string]*models.User),
		logger:    logger,
	}
}

// lookup returns the profile of userID or nil when it is anonymous, missing
// or unreadable.
func (c *userCache) lookup(ctx context.Context, userID string) *models.User {
	if userID == "" || userID == models.AnonymousUserID {
		return nil
	}
	if user, ok := c.users[userID]; ok {
		return user
	}

	var user *models.User
	snap, err := c.documents.Get(ctx, CollectionUsers, userID)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		c.logger.Warn().Err(err).Str("func", "*userCache.lookup").
			Str("user_id", userID).Msg("report owner lookup failed")
	default:
		var u models.User
		if err = snap.DataTo(&u); err != nil {
			c.logger.Warn().Err(err).Str("func", "*userCache.lookup").
				Str("user_id", userID).Msg("report owner could not be decoded")
			break
		}
		u.ID = snap.ID
		user = &u
	}

	c.users[userID] = user
	return user
}

// blobSafe maps userID onto [A-Za-z0-9_-] so every blob backend stores the
// screenshot under one flat name.
func blobSafe(userID string) string {
	return strings.Map(func(c rune) rune {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
			return c
		}
		return '_'
	}, userID)
}
