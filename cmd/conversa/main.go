package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/conversa/internal/api"
	"github.com/liliang-cn/conversa/internal/config"
	"github.com/liliang-cn/conversa/internal/embed"
	"github.com/liliang-cn/conversa/internal/repository"
	"github.com/liliang-cn/conversa/internal/schema"
	"github.com/liliang-cn/conversa/internal/service"
	"github.com/liliang-cn/conversa/internal/widgetid"
	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "", "Path to config file")
	embedID    = flag.String("embed", "", "Print the embed snippet for a widget id and exit")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	generator, err := embed.NewGenerator(embed.Options{
		BaseURL:     cfg.Embed.ScriptBaseURL,
		GlobalName:  cfg.Embed.GlobalName,
		ContainerID: cfg.Embed.ContainerID,
	})
	if err != nil {
		log.Fatalf("Invalid embed config: %v", err)
	}

	if *embedID != "" {
		snippet, err := generator.EmbedCodeSnippet(*embedID)
		if err != nil {
			log.Fatalf("Failed to generate embed code: %v", err)
		}
		fmt.Println(snippet)
		return
	}

	// Initialize logger
	logger, err := newLogger(cfg.Log.Development)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database (widget config, sessions, messages)
	db, err := repository.NewDB(cfg.Database.Path)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	validator, err := schema.NewValidator()
	if err != nil {
		logger.Fatal("Failed to compile widget config schema", zap.Error(err))
	}

	// Initialize repositories
	configStore := repository.NewConfigStore(db, validator)
	sessionRepo := repository.NewSessionRepository(db)

	// Initialize services
	configService, err := service.NewConfigService(context.Background(), configStore, widgetid.UUIDGenerator{}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize widget config", zap.Error(err))
	}

	chatService := service.NewChatService(
		sessionRepo,
		service.KeywordResponder{},
		logger,
	)

	widgetService := service.NewWidgetService(
		configService,
		generator,
		chatService,
	)

	// Setup router
	router := api.SetupRouter(configService, widgetService, logger, api.RouterConfig{
		APIKey:       cfg.Admin.APIKey,
		AllowOrigins: cfg.Server.AllowOrigins,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting Conversa server",
			zap.String("address", cfg.Address()),
			zap.String("base_url", cfg.Server.BaseURL),
			zap.String("widget_id", configService.Current().WidgetID),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	if cfg.Admin.APIKey == "" {
		logger.Warn("Admin API key is empty, admin routes are unauthenticated")
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func newLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
