package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alx-zhu/one-task-manager/internal/pdf"
	"github.com/alx-zhu/one-task-manager/internal/services"
)

type ReportHandler struct {
	service   *services.ReportService
	generator pdf.Generator
}

func NewReportHandler(service *services.ReportService, generator pdf.Generator) *ReportHandler {
	return &ReportHandler{service: service, generator: generator}
}

// GET /reports/summary
func (h *ReportHandler) GetSummary(c *gin.Context) {
	owner := ownerID(c)

	summary, err := h.service.Summary(c.Request.Context(), owner)
	if err != nil {
		log.Printf("[report][summary][err] owner=%s: %v", owner, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GET /reports/board.pdf
func (h *ReportHandler) DownloadBoardPDF(c *gin.Context) {
	owner := ownerID(c)

	buckets, err := h.service.Board(c.Request.Context(), owner)
	if err != nil {
		log.Printf("[report][pdf][err] owner=%s: %v", owner, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load board"})
		return
	}

	data, err := h.generator.BoardSummary(owner, buckets)
	if err != nil {
		log.Printf("[report][pdf][err] render owner=%s: %v", owner, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render pdf"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="board-summary.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
