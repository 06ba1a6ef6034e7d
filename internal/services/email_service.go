package services

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/alx-zhu/one-task-manager/internal/models"
)

type EmailService interface {
	SendTaskReminder(to string, task models.Task) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendTaskReminder(to string, task models.Task) error {
	due := "soon"
	if task.DueDate != nil {
		due = task.DueDate.Format("Mon, 2 Jan 2006 15:04")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Task due: %s", task.Title))
	m.SetBody("text/html", fmt.Sprintf(
		"<p>Your task <b>%s</b> is due %s.</p><p>Sent %s</p>",
		task.Title, due, time.Now().Format("2 Jan 2006"),
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reminder email: %w", err)
	}
	return nil
}
