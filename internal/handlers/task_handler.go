package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alx-zhu/one-task-manager/internal/models"
	"github.com/alx-zhu/one-task-manager/internal/services"
)

type TaskHandler struct {
	service services.TaskService
}

func NewTaskHandler(service services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// POST /tasks
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Success      201
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req struct {
		Title       string              `json:"title" binding:"required"`
		Description string              `json:"description"`
		Priority    models.TaskPriority `json:"priority"` // low|medium|high|urgent
		Tags        []string            `json:"tags"`
		DueDate     string              `json:"due_date"`  // RFC3339
		BucketID    string              `json:"bucket_id"` // preferred bucket
	}

	owner := ownerID(c)
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[task][create] owner=%s title=%q bucket=%q priority=%q", owner, req.Title, req.BucketID, req.Priority)

	var due *time.Time
	if req.DueDate != "" {
		t, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			log.Printf("[task][create][err] invalid due_date=%q: %v", req.DueDate, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due_date (RFC3339)"})
			return
		}
		due = &t
	}

	task, placement, err := h.service.Create(c.Request.Context(), owner, services.NewTask{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Tags:        req.Tags,
		DueDate:     due,
		BucketID:    req.BucketID,
	})
	if err != nil {
		if respondBoardError(c, err) {
			return
		}
		log.Printf("[task][create][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create task"})
		return
	}

	log.Printf("[task][create][ok] id=%s bucket=%s order=%d relocated=%v",
		task.ID, task.BucketID, task.OrderInBucket, placement.Relocated)
	c.JSON(http.StatusCreated, gin.H{"task": task, "relocated": placement.Relocated})
}

// GET /tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	owner := ownerID(c)
	id := c.Param("id")

	task, err := h.service.GetByID(c.Request.Context(), owner, id)
	if err != nil {
		log.Printf("[task][getByID][err] id=%s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get task"})
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, task)
}

// GET /tasks
func (h *TaskHandler) List(c *gin.Context) {
	owner := ownerID(c)

	var filter models.TaskFilter
	if v, ok := c.GetQuery("bucket_id"); ok {
		filter.BucketID = &v
	}
	if v, ok := c.GetQuery("status"); ok {
		st := models.TaskStatus(v)
		if !st.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		filter.Status = &st
	}
	if v, ok := c.GetQuery("priority"); ok {
		p := models.TaskPriority(v)
		if !p.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority"})
			return
		}
		filter.Priority = &p
	}

	tasks, err := h.service.List(c.Request.Context(), owner, filter)
	if err != nil {
		log.Printf("[task][list][err] owner=%s: %v", owner, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// PUT /tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	owner := ownerID(c)
	id := c.Param("id")

	var req struct {
		Title       *string              `json:"title"`
		Description *string              `json:"description"`
		Priority    *models.TaskPriority `json:"priority"`
		Status      *models.TaskStatus   `json:"status"`
		Tags        *[]string            `json:"tags"`
		DueDate     *string              `json:"due_date"` // RFC3339; "" clears
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := services.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		Tags:        req.Tags,
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			update.ClearDue = true
		} else {
			t, err := time.Parse(time.RFC3339, *req.DueDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due_date (RFC3339)"})
				return
			}
			update.DueDate = &t
		}
	}

	task, err := h.service.Update(c.Request.Context(), owner, id, update)
	if err != nil {
		if respondBoardError(c, err) {
			return
		}
		log.Printf("[task][update][err] id=%s: %v", id, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	log.Printf("[task][update][ok] id=%s", id)
	c.JSON(http.StatusOK, task)
}

// DELETE /tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	owner := ownerID(c)
	id := c.Param("id")

	if err := h.service.Delete(c.Request.Context(), owner, id); err != nil {
		log.Printf("[task][delete][err] id=%s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete task"})
		return
	}
	log.Printf("[task][delete][ok] id=%s", id)
	c.Status(http.StatusNoContent)
}
