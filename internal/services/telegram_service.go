package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/alx-zhu/one-task-manager/internal/models"
)

// TelegramService pushes reminder notifications to linked chats. A nil
// service (no bot token configured) silently skips every send.
type TelegramService struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramService(botToken string) (*TelegramService, error) {
	if botToken == "" {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	log.Printf("[tg] authorized as @%s", bot.Self.UserName)
	return &TelegramService{bot: bot}, nil
}

func (t *TelegramService) SendTaskReminder(chatID int64, task models.Task) error {
	if t == nil || t.bot == nil || chatID == 0 {
		log.Printf("[tg][skip] bot or chatID missing (chatID=%d)", chatID)
		return nil
	}

	due := "soon"
	if task.DueDate != nil {
		due = task.DueDate.Format("Mon, 2 Jan 15:04")
	}
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("⏰ <b>%s</b> is due %s", task.Title, due))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("[tg][send][err] chatID=%d: %v", chatID, err)
		return err
	}
	return nil
}
