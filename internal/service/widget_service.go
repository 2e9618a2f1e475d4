package service

import (
	"context"

	"github.com/liliang-cn/conversa/internal/domain"
	"github.com/liliang-cn/conversa/internal/embed"
)

// Stats summarizes stored activity for the current widget
type Stats struct {
	WidgetID  string `json:"widget_id"`
	ChatCount int    `json:"chat_count"`
}

// EmbedResponse is what the admin copies into a host page
type EmbedResponse struct {
	WidgetID  string `json:"widget_id"`
	ScriptURL string `json:"script_url"`
	Script    string `json:"script"`
	Snippet   string `json:"snippet"`
}

// WidgetService serves the embed code and the widget runtime for the current config
type WidgetService struct {
	configs     *ConfigService
	generator   *embed.Generator
	chatService *ChatService
}

// NewWidgetService creates a new widget service
func NewWidgetService(configs *ConfigService, generator *embed.Generator, chatService *ChatService) *WidgetService {
	return &WidgetService{
		configs:     configs,
		generator:   generator,
		chatService: chatService,
	}
}

// Embed returns the embed code for the current widget
func (s *WidgetService) Embed(ctx context.Context) (*EmbedResponse, error) {
	return s.EmbedFor(ctx, s.configs.Current().WidgetID)
}

// EmbedFor returns the embed code for an arbitrary widget id
func (s *WidgetService) EmbedFor(ctx context.Context, widgetID string) (*EmbedResponse, error) {
	script, err := s.generator.GenerateEmbedScript(widgetID)
	if err != nil {
		return nil, err
	}
	snippet, err := s.generator.EmbedCodeSnippet(widgetID)
	if err != nil {
		return nil, err
	}

	return &EmbedResponse{
		WidgetID:  widgetID,
		ScriptURL: s.generator.ScriptURL(widgetID),
		Script:    script,
		Snippet:   snippet,
	}, nil
}

// GetWidgetConfig returns the config for widgetID
func (s *WidgetService) GetWidgetConfig(ctx context.Context, widgetID string) (*domain.WidgetConfig, error) {
	cfg := s.configs.Current()
	if widgetID == "" || cfg.WidgetID != widgetID {
		return nil, domain.ErrNotFound
	}
	return &cfg, nil
}

// Script returns the full widget script for widgetID
func (s *WidgetService) Script(ctx context.Context, widgetID string) (string, error) {
	cfg, err := s.GetWidgetConfig(ctx, widgetID)
	if err != nil {
		return "", err
	}
	return s.generator.GenerateFullWidgetScript(*cfg)
}

// Chat handles a chat message
func (s *WidgetService) Chat(ctx context.Context, widgetID string, req *domain.ChatRequest) (*domain.ChatResponse, error) {
	cfg, err := s.GetWidgetConfig(ctx, widgetID)
	if err != nil {
		return nil, err
	}
	return s.chatService.Chat(ctx, *cfg, req)
}

// Stats returns stored chat statistics for the current widget
func (s *WidgetService) Stats(ctx context.Context) (*Stats, error) {
	widgetID := s.configs.Current().WidgetID
	count, err := s.chatService.CountChats(ctx, widgetID)
	if err != nil {
		return nil, err
	}
	return &Stats{WidgetID: widgetID, ChatCount: count}, nil
}
