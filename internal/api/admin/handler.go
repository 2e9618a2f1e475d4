package admin

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ettle/strcase"
	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/conversa/internal/api/httperror"
	"github.com/liliang-cn/conversa/internal/domain"
	"github.com/liliang-cn/conversa/internal/service"
)

// Handler handles admin API requests
type Handler struct {
	configService *service.ConfigService
	widgetService *service.WidgetService
}

// NewHandler creates a new admin handler
func NewHandler(configService *service.ConfigService, widgetService *service.WidgetService) *Handler {
	return &Handler{
		configService: configService,
		widgetService: widgetService,
	}
}

// RegisterRoutes registers admin routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	config := r.Group("/config")
	{
		config.GET("", h.GetConfig)
		config.PUT("", h.ReplaceConfig)
		config.PATCH("", h.UpdateField)
		config.POST("/reset", h.ResetConfig)
		config.POST("/save", h.SaveConfig)
		config.POST("/load", h.LoadConfig)
		config.DELETE("/saved", h.DiscardConfig)
		config.GET("/paths", h.ListPaths)
	}

	embed := r.Group("/embed")
	{
		embed.GET("", h.GetEmbed)
		embed.GET("/:widget_id", h.GetEmbedFor)
	}

	r.GET("/stats", h.GetStats)
}

// UpdateFieldRequest sets one config leaf. Path segments may be given in
// snake_case ("appearance.theme.primary_color").
type UpdateFieldRequest struct {
	Path  string `json:"path"`
	Value any    `json:"value"`
}

func normalizePath(path string) string {
	segments := strings.Split(path, ".")
	for i, seg := range segments {
		if strings.ContainsAny(seg, "_-") {
			segments[i] = strcase.ToCamel(seg)
		}
	}
	return strings.Join(segments, ".")
}

// Config handlers

func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.configService.Current())
}

func (h *Handler) ReplaceConfig(c *gin.Context) {
	var overrides domain.WidgetOverrides
	if err := c.ShouldBindJSON(&overrides); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg, err := h.configService.Replace(overrides)
	if err != nil {
		httperror.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, cfg)
}

func (h *Handler) UpdateField(c *gin.Context) {
	var req UpdateFieldRequest
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg, err := h.configService.UpdateField(normalizePath(req.Path), req.Value)
	if err != nil {
		httperror.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, cfg)
}

func (h *Handler) ResetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.configService.Reset())
}

func (h *Handler) SaveConfig(c *gin.Context) {
	if err := h.configService.Save(c.Request.Context()); err != nil {
		httperror.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, h.configService.Current())
}

func (h *Handler) LoadConfig(c *gin.Context) {
	cfg, err := h.configService.Load(c.Request.Context())
	if err != nil {
		httperror.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, cfg)
}

func (h *Handler) DiscardConfig(c *gin.Context) {
	if err := h.configService.Discard(c.Request.Context()); err != nil {
		httperror.Write(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ListPaths(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"paths": domain.LeafPaths()})
}

// Embed handlers

func (h *Handler) GetEmbed(c *gin.Context) {
	resp, err := h.widgetService.Embed(c.Request.Context())
	if err != nil {
		httperror.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetEmbedFor(c *gin.Context) {
	resp, err := h.widgetService.EmbedFor(c.Request.Context(), c.Param("widget_id"))
	if err != nil {
		httperror.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Stats handlers

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.widgetService.Stats(c.Request.Context())
	if err != nil {
		httperror.Write(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
