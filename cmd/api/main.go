package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"document-approval-api/config"
	"document-approval-api/controllers"
	"document-approval-api/middleware"
	"document-approval-api/repository"
	"document-approval-api/routes"
	"document-approval-api/services"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Configuration error: ", err)
	}

	logFile, _ := config.InitLogging(cfg.LogPath)
	if logFile != nil {
		defer logFile.Close()
	}

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// The pool is established once here and injected everywhere.
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	userStore := repository.NewUserStore(db)
	workflowStore := repository.NewWorkflowStore(db)
	documentStore := repository.NewDocumentStore(db)

	tokens := services.NewTokenService(cfg.JWTSecret, cfg.TokenIssuer, cfg.JWTExpiry)
	notifier := services.NewMailNotifier(config.NewMailer(cfg), userStore)
	lifecycle := services.NewLifecycleService(documentStore, workflowStore, notifier)
	workflowSvc := services.NewWorkflowService(workflowStore, userStore)

	ctl := &controllers.Set{
		Auth:      controllers.NewAuthController(userStore, tokens, cfg),
		Users:     controllers.NewUserController(userStore),
		Workflows: controllers.NewWorkflowController(workflowSvc),
		Documents: controllers.NewDocumentController(lifecycle, cfg),
		Approvals: controllers.NewApprovalController(lifecycle),
		Dashboard: controllers.NewDashboardController(lifecycle),
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Security headers
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	})

	router.Use(middleware.CORSMiddleware())

	routes.SetupRoutes(router, ctl, tokens, userStore)

	// Create upload directory if not exists
	if err := os.MkdirAll(cfg.UploadPath, os.ModePerm); err != nil {
		log.Printf("Warning: Failed to create upload directory: %v", err)
	}

	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
