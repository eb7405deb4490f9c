package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/Larry-007-del/attendance-system-master/internal/config"
	"github.com/Larry-007-del/attendance-system-master/internal/controllers"
	"github.com/Larry-007-del/attendance-system-master/internal/database"
	"github.com/Larry-007-del/attendance-system-master/internal/middleware"
	"github.com/Larry-007-del/attendance-system-master/internal/repositories"
	"github.com/Larry-007-del/attendance-system-master/internal/routes"
	"github.com/Larry-007-del/attendance-system-master/internal/services"
	"github.com/Larry-007-del/attendance-system-master/internal/storage"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	sessionRepo, tokenRepo, attendanceRepo := buildRepositories(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			log.Printf("error closing database: %v", err)
		}
	}()

	store, err := buildStorage(cfg)
	if err != nil {
		log.Fatalf("failed to initialize storage: %v", err)
	}

	// Initialize services
	sessionService := services.NewSessionService(sessionRepo, tokenRepo, cfg)
	checkInService := services.NewCheckInService(tokenRepo, sessionRepo)
	reportService := services.NewReportService(sessionRepo, attendanceRepo, store)

	// Initialize controllers
	sessionController := controllers.NewSessionController(sessionService, reportService)
	checkInController := controllers.NewCheckInController(checkInService, reportService, cfg)

	// Setup router
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(corsMiddleware())
	routes.SetupRoutes(router, sessionController, checkInController,
		middleware.AuthMiddleware(cfg), middleware.InstructorOnly())

	addr := cfg.Server.Host + ":" + strconv.Itoa(cfg.Server.Port)
	go func() {
		log.Printf("Server running on %s (storage=%T)", addr, store)
		if err := router.Run(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to run server: %v", err)
		}
	}()

	waitForShutdown()
}

// buildRepositories connects the database-backed stores, falling back to the
// in-memory engine when no database is reachable (useful for local runs).
func buildRepositories(cfg *config.Config) (repositories.SessionRepository, repositories.TokenRepository, repositories.AttendanceRepository) {
	if err := database.Connect(&cfg.Database); err != nil {
		log.Printf("database unavailable, using in-memory stores: %v", err)
		attendance := repositories.NewMemoryAttendanceRepository()
		return repositories.NewMemorySessionRepository(),
			repositories.NewMemoryTokenRepository(attendance),
			attendance
	}

	if err := database.RunMigrations(&cfg.Database); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	db := database.GetDB()
	return repositories.NewSessionRepository(db),
		repositories.NewTokenRepository(db),
		repositories.NewAttendanceRepository(db)
}

func buildStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.CloudStorage.Enabled {
		azStorage, err := storage.NewAzureBlobStorage(
			cfg.CloudStorage.Endpoint,
			cfg.CloudStorage.AccessKey,
			cfg.CloudStorage.SecretKey,
			cfg.CloudStorage.Container,
		)
		if err != nil {
			log.Printf("Azure Blob init failed, falling back to LocalStorage: %v", err)
			return storage.NewLocalStorage(reportPath(cfg)), nil
		}
		return azStorage, nil
	}

	return storage.NewLocalStorage(reportPath(cfg)), nil
}

func reportPath(cfg *config.Config) string {
	if cfg.Storage.Path != "" {
		return cfg.Storage.Path
	}
	return "./storage/reports"
}

func waitForShutdown() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Println("Shutting down server...")
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
