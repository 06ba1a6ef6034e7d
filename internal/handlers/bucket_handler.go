package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alx-zhu/one-task-manager/internal/models"
	"github.com/alx-zhu/one-task-manager/internal/services"
)

type BucketHandler struct {
	service services.BucketService
}

func NewBucketHandler(service services.BucketService) *BucketHandler {
	return &BucketHandler{service: service}
}

// POST /buckets
func (h *BucketHandler) Create(c *gin.Context) {
	owner := ownerID(c)

	var req struct {
		Name  string       `json:"name" binding:"required"`
		Limit models.Limit `json:"limit"` // null or absent = unlimited
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[bucket][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bucket, err := h.service.Create(c.Request.Context(), owner, req.Name, req.Limit)
	if err != nil {
		log.Printf("[bucket][create][err] owner=%s: %v", owner, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create bucket"})
		return
	}
	log.Printf("[bucket][create][ok] id=%s name=%q limit=%s", bucket.ID, bucket.Name, bucket.Limit)
	c.JSON(http.StatusCreated, bucket)
}

// GET /buckets
func (h *BucketHandler) List(c *gin.Context) {
	owner := ownerID(c)

	buckets, err := h.service.List(c.Request.Context(), owner)
	if err != nil {
		log.Printf("[bucket][list][err] owner=%s: %v", owner, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve buckets"})
		return
	}
	c.JSON(http.StatusOK, buckets)
}

// GET /buckets/:id
func (h *BucketHandler) GetByID(c *gin.Context) {
	owner := ownerID(c)
	id := c.Param("id")

	bucket, err := h.service.GetByID(c.Request.Context(), owner, id)
	if err != nil {
		log.Printf("[bucket][getByID][err] id=%s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get bucket"})
		return
	}
	if bucket == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "bucket not found"})
		return
	}
	c.JSON(http.StatusOK, bucket)
}

// PUT /buckets/:id
func (h *BucketHandler) Rename(c *gin.Context) {
	owner := ownerID(c)
	id := c.Param("id")

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bucket, err := h.service.Rename(c.Request.Context(), owner, id, req.Name)
	if err != nil {
		log.Printf("[bucket][rename][err] id=%s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rename bucket"})
		return
	}
	if bucket == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "bucket not found"})
		return
	}
	log.Printf("[bucket][rename][ok] id=%s name=%q", id, req.Name)
	c.JSON(http.StatusOK, bucket)
}

// PUT /buckets/:id/limit
func (h *BucketHandler) UpdateLimit(c *gin.Context) {
	owner := ownerID(c)
	id := c.Param("id")

	var req struct {
		Limit models.Limit `json:"limit"` // null = remove the cap
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[bucket][limit] owner=%s id=%s limit=%s", owner, id, req.Limit)

	if err := h.service.UpdateLimit(c.Request.Context(), owner, id, req.Limit); err != nil {
		if respondBoardError(c, err) {
			return
		}
		log.Printf("[bucket][limit][err] id=%s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update limit"})
		return
	}
	log.Printf("[bucket][limit][ok] id=%s", id)
	c.Status(http.StatusNoContent)
}

// POST /buckets/:id/reorder
func (h *BucketHandler) Reorder(c *gin.Context) {
	owner := ownerID(c)
	id := c.Param("id")

	var req struct {
		OverBucketID string `json:"over_bucket_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.Reorder(c.Request.Context(), owner, id, req.OverBucketID); err != nil {
		if respondBoardError(c, err) {
			return
		}
		log.Printf("[bucket][reorder][err] id=%s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reorder buckets"})
		return
	}
	log.Printf("[bucket][reorder][ok] id=%s over=%s", id, req.OverBucketID)
	c.Status(http.StatusNoContent)
}
