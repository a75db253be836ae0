package ai

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/JoshuaCYin/Event-Echo-Lite/pkg/config"
)

// ErrNotConfigured is returned by the factory when no provider key is set.
var ErrNotConfigured = errors.New("no ai provider configured")

// Message is one turn of a chat transcript. Role is "system", "user" or
// "assistant" regardless of the backing provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider generates a completion for a transcript. Implementations talk
// to exactly one upstream model API.
type Provider interface {
	Name() string
	Complete(ctx context.Context, messages []Message) (string, error)
}

const requestTimeout = 60 * time.Second

// NewProvider picks the provider once from configuration: OpenAI when its
// key is set, Gemini otherwise. The choice never changes at runtime.
func NewProvider(cfg config.AIConfig) (Provider, error) {
	client := &http.Client{Timeout: requestTimeout}
	switch {
	case cfg.OpenAIKey != "":
		return newOpenAIProvider(client, cfg.OpenAIKey, cfg.OpenAIModel), nil
	case cfg.GeminiKey != "":
		return newGeminiProvider(client, cfg.GeminiKey, cfg.GeminiModel), nil
	default:
		return nil, ErrNotConfigured
	}
}
