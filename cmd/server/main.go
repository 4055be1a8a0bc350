package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/labops/evidence-desk/internal/api"
	"github.com/labops/evidence-desk/internal/config"
	"github.com/labops/evidence-desk/internal/delivery"
	"github.com/labops/evidence-desk/internal/repository"
	"github.com/labops/evidence-desk/internal/session"
	"github.com/labops/evidence-desk/pkg/database"
	"github.com/labops/evidence-desk/pkg/utils"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"
)

func main() {
	// Local overrides for credentials; missing .env is fine
	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting expense evidence desk",
		zap.String("delivery_backend", cfg.Delivery.Backend),
		zap.Int("port", cfg.Server.Port))

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
		logger.Fatal("Failed to create data directory", zap.Error(err))
	}

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	submissionLog := repository.NewSubmissionLogRepository(db.DB, logger)
	sessions := session.NewManager(cfg.Session.PreserveApplicant, logger)

	deliverer, err := buildDeliverer(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize delivery backend", zap.Error(err))
	}

	handler := api.NewHandler(sessions, deliverer, submissionLog, logger)

	if cfg.Logger.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "evidence-desk",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	handler.RegisterRoutes(router.Group("/api/v1"))

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}

// buildDeliverer constructs the configured delivery backend
func buildDeliverer(cfg *config.Config, logger *zap.Logger) (delivery.Deliverer, error) {
	switch cfg.Delivery.Backend {
	case "ses":
		return delivery.NewSESSender(
			context.Background(),
			cfg.Email.Region,
			cfg.Email.Sender,
			cfg.Email.ReviewerEmail,
			logger,
		)
	case "lark":
		return delivery.NewLarkMessenger(delivery.LarkConfig{
			AppID:         cfg.Lark.AppID,
			AppSecret:     cfg.Lark.AppSecret,
			ReceiveID:     cfg.Lark.ReceiveID,
			ReceiveIDType: cfg.Lark.ReceiveIDType,
		}, logger), nil
	case "ledger":
		if err := os.MkdirAll(filepath.Dir(cfg.Ledger.Path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create ledger directory: %w", err)
		}
		return delivery.NewLedger(cfg.Ledger.Path, cfg.Ledger.Sheet, logger), nil
	}
	return nil, fmt.Errorf("unknown delivery backend: %s", cfg.Delivery.Backend)
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		)
	}
}
