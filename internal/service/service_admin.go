// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/report-desk/internal/fallback"
	"github.com/MKhiriev/report-desk/internal/logger"
	"github.com/MKhiriev/report-desk/internal/store"
	"github.com/MKhiriev/report-desk/models"
)

type adminService struct {
	documents store.DocumentStore
	policy    fallback.Policy

	logger *logger.Logger
}

func NewAdminService(documents store.DocumentStore, policy fallback.Policy, logger *logger.Logger) AdminService {
	return &adminService{
		documents: documents,
		policy:    policy,
		logger:    logger,
	}
}

func (a *adminService) ListUsers(ctx context.Context) ([]models.User, error) {
	return fallback.Do(ctx, a.policy, "list users", func(ctx context.Context) ([]models.User, error) {
		return listAll(ctx, a.documents, CollectionUsers, func(u *models.User, id string) { u.ID = id })
	}, []models.User{})
}

func (a *adminService) ListBusinesses(ctx context.Context) ([]models.Business, error) {
	return fallback.Do(ctx, a.policy, "list businesses", func(ctx context.Context) ([]models.Business, error) {
		return listAll(ctx, a.documents, CollectionBusinesses, func(b *models.Business, id string) { b.ID = id })
	}, []models.Business{})
}

func (a *adminService) ApproveBusiness(ctx context.Context, id string) (bool, error) {
	return fallback.Run(ctx, a.policy, "approve business", func(ctx context.Context) error {
		return a.update(ctx, CollectionBusinesses, id, map[string]any{"isApproved": true})
	})
}

func (a *adminService) BanUser(ctx context.Context, id string) (bool, error) {
	return fallback.Run(ctx, a.policy, "ban user", func(ctx context.Context) error {
		return a.update(ctx, CollectionUsers, id, map[string]any{"isBanned": true})
	})
}

func (a *adminService) GetSettings(ctx context.Context) (models.SystemSettings, error) {
	return fallback.Do(ctx, a.policy, "get settings", a.getSettings, models.DefaultSettings())
}

// getSettings reads the settings document, creating it with the defaults
// when absent. A lost creation race re-reads the winner's document.
func (a *adminService) getSettings(ctx context.Context) (models.SystemSettings, error) {
	settings, err := a.readSettings(ctx)
	if !errors.Is(err, store.ErrNotFound) {
		return settings, err
	}

	defaults := models.DefaultSettings()
	err = a.documents.Create(ctx, CollectionSettings, SettingsDocumentID, defaults)
	switch {
	case err == nil:
		a.logger.Info().Str("func", "*adminService.getSettings").Msg("created default system settings")
		return defaults, nil
	case errors.Is(err, store.ErrAlreadyExists):
		return a.readSettings(ctx)
	default:
		return models.SystemSettings{}, err
	}
}

// readSettings decodes the stored settings over the defaults so that a
// document holding only some fields still yields a complete record.
func (a *adminService) readSettings(ctx context.Context) (models.SystemSettings, error) {
	snap, err := a.documents.Get(ctx, CollectionSettings, SettingsDocumentID)
	if err != nil {
		return models.SystemSettings{}, err
	}

	var stored models.SettingsUpdate
	if err = snap.DataTo(&stored); err != nil {
		return models.SystemSettings{}, err
	}
	return models.DefaultSettings().Apply(stored), nil
}

func (a *adminService) UpdateSettings(ctx context.Context, update models.SettingsUpdate) (bool, error) {
	return fallback.Run(ctx, a.policy, "update settings", func(ctx context.Context) error {
		fields := update.Fields()

		err := a.documents.Update(ctx, CollectionSettings, SettingsDocumentID, fields)
		if errors.Is(err, store.ErrNotFound) {
			// the document is created from the partial alone; unset fields
			// read back as their defaults
			return a.documents.Set(ctx, CollectionSettings, SettingsDocumentID, fields)
		}
		return err
	})
}

func (a *adminService) update(ctx context.Context, collection, id string, fields map[string]any) error {
	err := a.documents.Update(ctx, collection, id, fields)
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{Collection: collection, ID: id}
	}
	return err
}

// listAll decodes every document of collection into T. setID stores the
// document id on the decoded value.
func listAll[T any](ctx context.Context, documents store.DocumentStore, collection string, setID func(*T, string)) ([]T, error) {
	snaps, err := documents.Query(ctx, collection, store.Query{})
	if err != nil {
		return nil, err
	}

	items := make([]T, 0, len(snaps))
	for _, snap := range snaps {
		var item T
		if err = snap.DataTo(&item); err != nil {
			return nil, err
		}
		setID(&item, snap.ID)
		items = append(items, item)
	}
	return items, nil
}
