package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/conversa/internal/api/admin"
	"github.com/liliang-cn/conversa/internal/api/middleware"
	"github.com/liliang-cn/conversa/internal/api/widget"
	"github.com/liliang-cn/conversa/internal/service"
	"go.uber.org/zap"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	APIKey       string
	AllowOrigins []string
}

// SetupRouter sets up the Gin router
func SetupRouter(
	configService *service.ConfigService,
	widgetService *service.WidgetService,
	logger *zap.Logger,
	cfg RouterConfig,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logging(logger))

	// CORS middleware
	r.Use(middleware.CORS(cfg.AllowOrigins))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Widget runtime and public API (based on widget_id)
	widgetHandler := widget.NewHandler(widgetService)
	widgetHandler.RegisterScriptRoutes(r)
	widgetGroup := r.Group("/api/widget")
	widgetHandler.RegisterRoutes(widgetGroup)

	// Admin API (requires API key)
	adminHandler := admin.NewHandler(configService, widgetService)
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.Auth(cfg.APIKey))
	adminHandler.RegisterRoutes(adminGroup)

	return r
}
