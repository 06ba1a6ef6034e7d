package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alx-zhu/one-task-manager/internal/models"
	"github.com/alx-zhu/one-task-manager/internal/services"
)

type SettingsHandler struct {
	service services.SettingsService
}

func NewSettingsHandler(service services.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// GET /settings
func (h *SettingsHandler) Get(c *gin.Context) {
	owner := ownerID(c)

	settings, err := h.service.Get(c.Request.Context(), owner)
	if err != nil {
		log.Printf("[settings][get][err] owner=%s: %v", owner, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// PUT /settings
func (h *SettingsHandler) Update(c *gin.Context) {
	owner := ownerID(c)

	var req struct {
		Email            string `json:"email"`
		TelegramChatID   int64  `json:"telegram_chat_id"`
		RemindersEnabled bool   `json:"reminders_enabled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.service.Update(c.Request.Context(), &models.NotificationSettings{
		OwnerID:          owner,
		Email:            req.Email,
		TelegramChatID:   req.TelegramChatID,
		RemindersEnabled: req.RemindersEnabled,
	})
	if err != nil {
		log.Printf("[settings][update][err] owner=%s: %v", owner, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save settings"})
		return
	}
	log.Printf("[settings][update][ok] owner=%s", owner)
	c.JSON(http.StatusOK, settings)
}
