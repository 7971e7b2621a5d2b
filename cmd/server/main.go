package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/OpenProcure/procure/internal/config"
	"github.com/OpenProcure/procure/internal/database"
	"github.com/OpenProcure/procure/internal/middleware"
	"github.com/OpenProcure/procure/internal/telemetry"
	"github.com/OpenProcure/procure/internal/uploads"
	"github.com/OpenProcure/procure/internal/workflow"
)

func main() {
	telemetry.SetupLogger()

	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	slog.Info("configuration loaded",
		"db_host", cfg.Database.Host,
		"db_port", cfg.Database.Port,
		"db_name", cfg.Database.Name,
		"server_port", cfg.Server.Port,
		"storage_type", cfg.Storage.Type,
	)

	// Initialize database connection
	db, err := database.New(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	if err := database.HealthCheck(db); err != nil {
		log.Fatalf("database health check failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	// Initialize the workflow manager and start the metrics refresher
	wm := workflow.NewManager(db, cfg.Metrics.StatusRefreshInterval)
	wm.StartStatusGaugeRefresher()
	defer wm.StopStatusGaugeRefresher()

	// Initialize attachment storage
	storageDriver, err := uploads.NewStorageFromConfig(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatalf("failed to initialize attachment storage: %v", err)
	}
	attachmentService := uploads.NewAttachmentService(db, storageDriver, wm.ItemService())
	attachmentHandler := uploads.NewHTTPHandler(attachmentService)

	// Set up HTTP routes
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(&cfg.CORS))

	wm.RegisterRoutes(engine)
	attachmentHandler.RegisterRoutes(engine)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.GET("/healthz", func(c *gin.Context) {
		if err := database.HealthCheck(db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: engine,
	}

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		slog.Info("starting server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	// Wait for interrupt signal
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	} else {
		slog.Info("server gracefully stopped")
	}
}
