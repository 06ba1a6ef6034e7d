package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alx-zhu/one-task-manager/internal/services"
)

// BoardHandler exposes the multi-record board mutations: drags between and
// within buckets, completion, and validated bucket deletion.
type BoardHandler struct {
	service services.BoardService
}

func NewBoardHandler(service services.BoardService) *BoardHandler {
	return &BoardHandler{service: service}
}

// GET /board
// @Summary      Hydrated board: buckets in order, each with its tasks
// @Tags         board
// @Produce      json
// @Success      200
// @Router       /board [get]
func (h *BoardHandler) GetBoard(c *gin.Context) {
	owner := ownerID(c)

	buckets, err := h.service.Board(c.Request.Context(), owner)
	if err != nil {
		log.Printf("[board][get][err] owner=%s: %v", owner, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load board"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"buckets": buckets})
}

// POST /tasks/:id/move
func (h *BoardHandler) MoveTask(c *gin.Context) {
	owner := ownerID(c)
	taskID := c.Param("id")

	var req struct {
		BucketID     string `json:"bucket_id" binding:"required"`
		TargetTaskID string `json:"target_task_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[board][move][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[board][move] owner=%s task=%s bucket=%s over=%q", owner, taskID, req.BucketID, req.TargetTaskID)

	if err := h.service.MoveTask(c.Request.Context(), owner, taskID, req.BucketID, req.TargetTaskID); err != nil {
		if respondBoardError(c, err) {
			return
		}
		log.Printf("[board][move][err] task=%s: %v", taskID, err)
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[board][move][ok] task=%s", taskID)
	c.Status(http.StatusNoContent)
}

// POST /tasks/:id/reorder
func (h *BoardHandler) ReorderTask(c *gin.Context) {
	owner := ownerID(c)
	taskID := c.Param("id")

	var req struct {
		OverTaskID string `json:"over_task_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.ReorderTask(c.Request.Context(), owner, taskID, req.OverTaskID); err != nil {
		if respondBoardError(c, err) {
			return
		}
		log.Printf("[board][reorder][err] task=%s: %v", taskID, err)
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[board][reorder][ok] task=%s over=%s", taskID, req.OverTaskID)
	c.Status(http.StatusNoContent)
}

// POST /tasks/:id/complete
func (h *BoardHandler) CompleteTask(c *gin.Context) {
	owner := ownerID(c)
	taskID := c.Param("id")

	if err := h.service.CompleteTask(c.Request.Context(), owner, taskID); err != nil {
		if respondBoardError(c, err) {
			return
		}
		log.Printf("[board][complete][err] task=%s: %v", taskID, err)
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[board][complete][ok] task=%s", taskID)
	c.Status(http.StatusNoContent)
}

// POST /tasks/:id/uncomplete
func (h *BoardHandler) UncompleteTask(c *gin.Context) {
	owner := ownerID(c)
	taskID := c.Param("id")

	placement, err := h.service.UncompleteTask(c.Request.Context(), owner, taskID)
	if err != nil {
		if respondBoardError(c, err) {
			return
		}
		log.Printf("[board][uncomplete][err] task=%s: %v", taskID, err)
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[board][uncomplete][ok] task=%s -> bucket=%s order=%d", taskID, placement.BucketID, placement.OrderInBucket)
	c.JSON(http.StatusOK, gin.H{
		"bucket_id":       placement.BucketID,
		"order_in_bucket": placement.OrderInBucket,
	})
}

// DELETE /buckets/:id
func (h *BoardHandler) DeleteBucket(c *gin.Context) {
	owner := ownerID(c)
	bucketID := c.Param("id")

	relocatedTo, err := h.service.DeleteBucket(c.Request.Context(), owner, bucketID)
	if err != nil {
		if respondBoardError(c, err) {
			return
		}
		log.Printf("[board][deleteBucket][err] bucket=%s: %v", bucketID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete bucket"})
		return
	}
	log.Printf("[board][deleteBucket][ok] bucket=%s relocated_to=%q", bucketID, relocatedTo)
	c.JSON(http.StatusOK, gin.H{"relocated_to": relocatedTo})
}
