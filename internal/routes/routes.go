package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/alx-zhu/one-task-manager/internal/handlers"
	"github.com/alx-zhu/one-task-manager/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	boardHandler *handlers.BoardHandler,
	taskHandler *handlers.TaskHandler,
	bucketHandler *handlers.BucketHandler,
	reportHandler *handlers.ReportHandler,
	settingsHandler *handlers.SettingsHandler,
) *gin.Engine {

	r.Use(middleware.RequireOwner())

	// BOARD
	r.GET("/board", boardHandler.GetBoard)

	// TASKS
	tasks := r.Group("/tasks")
	{
		tasks.POST("/", taskHandler.Create)
		tasks.GET("/", taskHandler.List)
		tasks.GET("/:id", taskHandler.GetByID)
		tasks.PUT("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Delete)
		tasks.POST("/:id/move", boardHandler.MoveTask)
		tasks.POST("/:id/reorder", boardHandler.ReorderTask)
		tasks.POST("/:id/complete", boardHandler.CompleteTask)
		tasks.POST("/:id/uncomplete", boardHandler.UncompleteTask)
	}

	// BUCKETS
	buckets := r.Group("/buckets")
	{
		buckets.POST("/", bucketHandler.Create)
		buckets.GET("/", bucketHandler.List)
		buckets.GET("/:id", bucketHandler.GetByID)
		buckets.PUT("/:id", bucketHandler.Rename)
		buckets.PUT("/:id/limit", bucketHandler.UpdateLimit)
		buckets.POST("/:id/reorder", bucketHandler.Reorder)
		buckets.DELETE("/:id", boardHandler.DeleteBucket)
	}

	// REPORTS
	reports := r.Group("/reports")
	{
		reports.GET("/summary", reportHandler.GetSummary)
		reports.GET("/board.pdf", reportHandler.DownloadBoardPDF)
	}

	// SETTINGS
	settings := r.Group("/settings")
	{
		settings.GET("/", settingsHandler.Get)
		settings.PUT("/", settingsHandler.Update)
	}

	return r
}
