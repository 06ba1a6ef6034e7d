package models

import "time"

// NotificationSettings holds per-owner delivery targets for due-task
// reminders. TelegramChatID of 0 means telegram delivery is off.
type NotificationSettings struct {
	OwnerID          string    `json:"owner_id"`
	Email            string    `json:"email,omitempty"`
	TelegramChatID   int64     `json:"telegram_chat_id,omitempty"`
	RemindersEnabled bool      `json:"reminders_enabled"`
	UpdatedAt        time.Time `json:"updated_at"`
}
