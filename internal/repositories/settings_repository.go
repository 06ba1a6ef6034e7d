package repositories

import (
	"context"
	"database/sql"

	"github.com/alx-zhu/one-task-manager/internal/models"
)

type SettingsRepository interface {
	Find(ctx context.Context, ownerID string) (*models.NotificationSettings, error)
	Upsert(ctx context.Context, s *models.NotificationSettings) error
}

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Find(ctx context.Context, ownerID string) (*models.NotificationSettings, error) {
	query := `SELECT owner_id, email, telegram_chat_id, reminders_enabled, updated_at
		FROM notification_settings WHERE owner_id = $1`
	s := &models.NotificationSettings{}
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(
		&s.OwnerID, &s.Email, &s.TelegramChatID, &s.RemindersEnabled, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, s *models.NotificationSettings) error {
	query := `
		INSERT INTO notification_settings (owner_id, email, telegram_chat_id, reminders_enabled, updated_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (owner_id) DO UPDATE SET
			email=EXCLUDED.email,
			telegram_chat_id=EXCLUDED.telegram_chat_id,
			reminders_enabled=EXCLUDED.reminders_enabled,
			updated_at=EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		s.OwnerID, s.Email, s.TelegramChatID, s.RemindersEnabled, s.UpdatedAt)
	return err
}
