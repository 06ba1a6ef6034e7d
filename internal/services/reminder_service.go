package services

import (
	"context"
	"log"
	"time"

	"github.com/alx-zhu/one-task-manager/internal/repositories"
)

// ReminderService periodically scans for tasks due within the next day
// and notifies their owners once per task, over whichever channels the
// owner configured.
type ReminderService struct {
	tasks    repositories.TaskRepository
	settings repositories.SettingsRepository
	email    EmailService
	tg       *TelegramService
	interval time.Duration
}

func NewReminderService(
	tasks repositories.TaskRepository,
	settings repositories.SettingsRepository,
	email EmailService,
	tg *TelegramService,
	interval time.Duration,
) *ReminderService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &ReminderService{
		tasks:    tasks,
		settings: settings,
		email:    email,
		tg:       tg,
		interval: interval,
	}
}

// Run blocks until ctx is cancelled. Intended for a goroutine in app.Run.
func (s *ReminderService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("[reminder] worker started, interval=%s", s.interval)
	for {
		select {
		case <-ctx.Done():
			log.Printf("[reminder] worker stopped")
			return
		case <-ticker.C:
			s.processOnce(ctx)
		}
	}
}

func (s *ReminderService) processOnce(ctx context.Context) {
	now := time.Now()
	due, err := s.tasks.ListDueForReminder(ctx, now, 50)
	if err != nil {
		log.Printf("[reminder][err] list due tasks: %v", err)
		return
	}
	if len(due) == 0 {
		return
	}
	log.Printf("[reminder] %d task(s) due", len(due))

	for _, task := range due {
		settings, err := s.settings.Find(ctx, task.OwnerID)
		if err != nil {
			log.Printf("[reminder][err] settings for owner=%s: %v", task.OwnerID, err)
			continue
		}
		if settings == nil || !settings.RemindersEnabled {
			// Still mark it so a disabled owner is not rescanned forever.
			if err := s.tasks.SetReminderSent(ctx, task.ID, now); err != nil {
				log.Printf("[reminder][err] mark task=%s: %v", task.ID, err)
			}
			continue
		}

		delivered := false
		if settings.Email != "" {
			if err := s.email.SendTaskReminder(settings.Email, task); err != nil {
				log.Printf("[reminder][err] email task=%s: %v", task.ID, err)
			} else {
				delivered = true
			}
		}
		if settings.TelegramChatID != 0 {
			if err := s.tg.SendTaskReminder(settings.TelegramChatID, task); err != nil {
				log.Printf("[reminder][err] telegram task=%s: %v", task.ID, err)
			} else {
				delivered = true
			}
		}

		if delivered {
			if err := s.tasks.SetReminderSent(ctx, task.ID, now); err != nil {
				log.Printf("[reminder][err] mark task=%s: %v", task.ID, err)
			}
		}
	}
}
