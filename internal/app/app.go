package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/alx-zhu/one-task-manager/internal/config"
	"github.com/alx-zhu/one-task-manager/internal/handlers"
	"github.com/alx-zhu/one-task-manager/internal/pdf"
	"github.com/alx-zhu/one-task-manager/internal/repositories"
	"github.com/alx-zhu/one-task-manager/internal/routes"
	"github.com/alx-zhu/one-task-manager/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/alx-zhu/one-task-manager/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	// === Repos ===
	taskRepo := repositories.NewTaskRepository(db)
	bucketRepo := repositories.NewBucketRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)

	// === Services ===
	boardService := services.NewBoardService(bucketRepo, taskRepo)
	taskService := services.NewTaskService(taskRepo, bucketRepo)
	bucketService := services.NewBucketService(bucketRepo, taskRepo)
	settingsService := services.NewSettingsService(settingsRepo)
	reportService := services.NewReportService(boardService)

	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	telegramService, err := services.NewTelegramService(cfg.Telegram.BotToken)
	if err != nil {
		log.Printf("telegram disabled: %v", err)
	}

	reminderService := services.NewReminderService(
		taskRepo,
		settingsRepo,
		emailService,
		telegramService,
		cfg.Reminders.Interval,
	)

	// === Handlers ===
	boardHandler := handlers.NewBoardHandler(boardService)
	taskHandler := handlers.NewTaskHandler(taskService)
	bucketHandler := handlers.NewBucketHandler(bucketService)
	reportHandler := handlers.NewReportHandler(reportService, pdf.NewBoardReportGenerator())
	settingsHandler := handlers.NewSettingsHandler(settingsService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		boardHandler,
		taskHandler,
		bucketHandler,
		reportHandler,
		settingsHandler,
	)

	// === Reminder worker ===
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go reminderService.Run(ctx)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, X-User-ID")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
