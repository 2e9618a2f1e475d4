package widget

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/conversa/internal/api/httperror"
	"github.com/liliang-cn/conversa/internal/domain"
	"github.com/liliang-cn/conversa/internal/service"
)

// Handler handles widget API requests
type Handler struct {
	widgetService *service.WidgetService
}

// NewHandler creates a new widget handler
func NewHandler(widgetService *service.WidgetService) *Handler {
	return &Handler{widgetService: widgetService}
}

// RegisterRoutes registers the JSON widget routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/config/:widget_id", h.GetConfig)
	r.POST("/chat/:widget_id", h.Chat)
}

// RegisterScriptRoutes registers the route the loader script fetches
func (h *Handler) RegisterScriptRoutes(r gin.IRoutes) {
	r.GET("/widget/:file", h.Script)
}

// Script serves the full widget runtime for /widget/<id>.js
func (h *Handler) Script(c *gin.Context) {
	file := c.Param("file")
	widgetID, ok := strings.CutSuffix(file, ".js")
	if !ok {
		httperror.Write(c, domain.ErrNotFound)
		return
	}

	script, err := h.widgetService.Script(c.Request.Context(), widgetID)
	if err != nil {
		httperror.Write(c, err)
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "application/javascript; charset=utf-8", []byte(script))
}

// GetConfig returns the widget configuration
func (h *Handler) GetConfig(c *gin.Context) {
	config, err := h.widgetService.GetWidgetConfig(c.Request.Context(), c.Param("widget_id"))
	if err != nil {
		httperror.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, config)
}

// Chat handles a chat message
func (h *Handler) Chat(c *gin.Context) {
	var req domain.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.widgetService.Chat(c.Request.Context(), c.Param("widget_id"), &req)
	if err != nil {
		httperror.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
