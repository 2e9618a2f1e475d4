package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/liliang-cn/conversa/internal/domain"
)

// ResponderRequest is the input to a Responder
type ResponderRequest struct {
	Message string
	History []*domain.Message
}

// Responder produces assistant answers
type Responder interface {
	Respond(ctx context.Context, req ResponderRequest) (string, error)
}

// KeywordResponder is a canned responder used in place of a model
type KeywordResponder struct{}

var keywordAnswers = []struct {
	keywords []string
	answer   string
}{
	{[]string{"hello", "hi"}, "Hello! How can I assist you today?"},
	{[]string{"help"}, "I'm here to help! What do you need assistance with?"},
	{[]string{"feature", "capability"}, "Our chat widget supports multiple AI models, context-awareness, and a knowledge base integration to provide accurate answers to your questions."},
	{[]string{"price", "cost"}, "We offer flexible pricing options based on your needs. The basic plan starts at $29/month and includes up to 1000 AI requests."},
	{[]string{"api", "integration"}, "Yes, our system provides API endpoints for custom integrations. You can connect it to your existing systems easily."},
}

// Respond matches the message against a fixed keyword table
func (KeywordResponder) Respond(ctx context.Context, req ResponderRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	words := strings.FieldsFunc(strings.ToLower(req.Message), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	for _, entry := range keywordAnswers {
		for _, kw := range entry.keywords {
			if matchesKeyword(words, kw) {
				return entry.answer, nil
			}
		}
	}

	if len(req.History) > 0 {
		return fmt.Sprintf("I understand you're asking about %q. Could you provide more specific information about what you'd like to know?", req.Message), nil
	}
	return fmt.Sprintf("Thank you for your message: %q. How can I help you with this today?", req.Message), nil
}

// matchesKeyword matches whole words and simple plurals ("features", "prices")
func matchesKeyword(words []string, kw string) bool {
	for _, w := range words {
		if w == kw || (len(kw) > 2 && strings.HasPrefix(w, kw)) {
			return true
		}
	}
	return false
}
