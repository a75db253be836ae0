package ai

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/JoshuaCYin/Event-Echo-Lite/pkg/apperr"
)

const chatSystemPrompt = `You are the planning assistant of a campus event platform.
Answer questions about organizing events: scheduling, venues, logistics,
promotion and budgeting. Keep answers short and practical.`

const wizardSystemPrompt = `You draft campus event proposals. Given a rough idea,
reply with a JSON object containing: "title" (at most 200 characters),
"description", "suggested_duration_hours" (number) and "venue_hints"
(array of strings). Reply with the JSON object only.`

// ChatRequest carries a chat transcript; the client resends prior turns,
// the server keeps no conversation state.
type ChatRequest struct {
	Messages []Message `json:"messages" binding:"required"`
}

// ChatResponse is the assistant's reply plus the provider that produced it.
type ChatResponse struct {
	Reply    string `json:"reply"`
	Provider string `json:"provider"`
}

// WizardRequest asks for an event draft from a rough idea.
type WizardRequest struct {
	Idea string `json:"idea" binding:"required"`
}

// WizardResponse carries the model's draft. Draft is the raw model output,
// expected to be a JSON object; the client parses it so a malformed draft
// degrades to plain text instead of an error.
type WizardResponse struct {
	Draft    string `json:"draft"`
	Provider string `json:"provider"`
}

// Service defines the business logic interface for the assistant. Both
// operations proxy to the configured provider with a fixed system prompt.
type Service interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	Wizard(ctx context.Context, req WizardRequest) (*WizardResponse, error)
}

type service struct {
	provider Provider
	logger   *zap.Logger
}

// NewService creates a new assistant service instance
func NewService(provider Provider, logger *zap.Logger) Service {
	return &service{provider: provider, logger: logger}
}

func (s *service) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if len(req.Messages) == 0 {
		return nil, apperr.Validation("messages must not be empty")
	}
	for _, m := range req.Messages {
		if strings.TrimSpace(m.Content) == "" {
			return nil, apperr.Validation("message content must not be empty")
		}
	}

	transcript := append([]Message{{Role: "system", Content: chatSystemPrompt}}, req.Messages...)
	reply, err := s.provider.Complete(ctx, transcript)
	if err != nil {
		s.logger.Error("chat completion failed",
			zap.String("provider", s.provider.Name()),
			zap.Error(err))
		return nil, apperr.Internal(err, "assistant is unavailable")
	}
	return &ChatResponse{Reply: reply, Provider: s.provider.Name()}, nil
}

func (s *service) Wizard(ctx context.Context, req WizardRequest) (*WizardResponse, error) {
	if strings.TrimSpace(req.Idea) == "" {
		return nil, apperr.Validation("idea must not be empty")
	}

	transcript := []Message{
		{Role: "system", Content: wizardSystemPrompt},
		{Role: "user", Content: req.Idea},
	}
	draft, err := s.provider.Complete(ctx, transcript)
	if err != nil {
		s.logger.Error("wizard completion failed",
			zap.String("provider", s.provider.Name()),
			zap.Error(err))
		return nil, apperr.Internal(err, "assistant is unavailable")
	}
	return &WizardResponse{Draft: draft, Provider: s.provider.Name()}, nil
}
