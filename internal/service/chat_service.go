package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/liliang-cn/conversa/internal/domain"
	"go.uber.org/zap"
)

// SessionStore persists chat sessions and messages
type SessionStore interface {
	Create(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Touch(ctx context.Context, id string) error
	CreateMessage(ctx context.Context, message *domain.Message) error
	GetMessages(ctx context.Context, sessionID string) ([]*domain.Message, error)
	CountChats(ctx context.Context, widgetID string) (int, error)
}

// ChatService answers widget chat messages with a Responder
type ChatService struct {
	sessions  SessionStore
	responder Responder
	logger    *zap.Logger
}

// NewChatService creates a new chat service
func NewChatService(sessions SessionStore, responder Responder, logger *zap.Logger) *ChatService {
	return &ChatService{
		sessions:  sessions,
		responder: responder,
		logger:    logger,
	}
}

// Chat answers req for the widget described by cfg. History is stored only
// when the widget persists conversations.
func (s *ChatService) Chat(ctx context.Context, cfg domain.WidgetConfig, req *domain.ChatRequest) (*domain.ChatResponse, error) {
	if req.Message == "" {
		return nil, domain.ErrInvalidRequest
	}
	persist := cfg.Behavior.PersistConversation

	sessionID, history, err := s.resolveSession(ctx, cfg.WidgetID, req.SessionID, persist)
	if err != nil {
		return nil, err
	}

	answer, err := s.responder.Respond(ctx, ResponderRequest{Message: req.Message, History: history})
	if err != nil {
		s.logger.Warn("Responder failed", zap.String("widget_id", cfg.WidgetID), zap.Error(err))
		answer = fmt.Sprintf("Sorry, something went wrong: %v", err)
	}

	if persist {
		if err := s.record(ctx, sessionID, req.Message, answer); err != nil {
			return nil, err
		}
	}

	return &domain.ChatResponse{SessionID: sessionID, Answer: answer}, nil
}

func (s *ChatService) resolveSession(ctx context.Context, widgetID, sessionID string, persist bool) (string, []*domain.Message, error) {
	if !persist {
		if sessionID == "" {
			sessionID = uuid.New().String()
		}
		return sessionID, nil, nil
	}

	if sessionID != "" {
		session, err := s.sessions.Get(ctx, sessionID)
		if err != nil {
			return "", nil, err
		}
		if session != nil && session.WidgetID == widgetID {
			history, err := s.sessions.GetMessages(ctx, sessionID)
			if err != nil {
				return "", nil, err
			}
			return sessionID, history, nil
		}
		// unknown or foreign session: start a new one
	}

	session := &domain.Session{WidgetID: widgetID}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", nil, err
	}
	return session.ID, nil, nil
}

func (s *ChatService) record(ctx context.Context, sessionID, question, answer string) error {
	if err := s.sessions.CreateMessage(ctx, &domain.Message{
		SessionID: sessionID,
		Role:      domain.RoleUser,
		Content:   question,
	}); err != nil {
		return err
	}
	if err := s.sessions.CreateMessage(ctx, &domain.Message{
		SessionID: sessionID,
		Role:      domain.RoleAssistant,
		Content:   answer,
	}); err != nil {
		return err
	}
	return s.sessions.Touch(ctx, sessionID)
}

// CountChats returns the number of stored user messages for widgetID
func (s *ChatService) CountChats(ctx context.Context, widgetID string) (int, error) {
	return s.sessions.CountChats(ctx, widgetID)
}
