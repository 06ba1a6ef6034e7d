package services

import (
	"context"
	"time"

	"github.com/alx-zhu/one-task-manager/internal/models"
	"github.com/alx-zhu/one-task-manager/internal/repositories"
)

type SettingsService interface {
	Get(ctx context.Context, ownerID string) (*models.NotificationSettings, error)
	Update(ctx context.Context, s *models.NotificationSettings) (*models.NotificationSettings, error)
}

type settingsService struct {
	repo repositories.SettingsRepository
}

func NewSettingsService(repo repositories.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) Get(ctx context.Context, ownerID string) (*models.NotificationSettings, error) {
	settings, err := s.repo.Find(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return &models.NotificationSettings{OwnerID: ownerID}, nil
	}
	return settings, nil
}

func (s *settingsService) Update(ctx context.Context, settings *models.NotificationSettings) (*models.NotificationSettings, error) {
	settings.UpdatedAt = time.Now()
	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
