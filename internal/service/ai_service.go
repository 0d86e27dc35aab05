package service

import (
	"context"

	apperrors "aura/internal/errors"
	"aura/internal/llm"
	"aura/internal/logger"
)

// AIService proxies completion requests to an ordered list of providers.
// The first provider that answers wins; when every configured provider has
// failed the caller gets ErrAIUnavailable. There is no backoff, no circuit
// breaker and no response caching.
type AIService interface {
	Complete(ctx context.Context, prompt, contextText, systemPrompt string) (string, error)
}

type aiService struct {
	providers []*llm.Provider
}

// NewAIService creates a completion service over the given providers,
// tried in order.
func NewAIService(providers ...*llm.Provider) AIService {
	return &aiService{providers: providers}
}

func (s *aiService) Complete(ctx context.Context, prompt, contextText, systemPrompt string) (string, error) {
	for _, p := range s.providers {
		if !p.Configured() {
			continue
		}
		response, err := p.Complete(ctx, prompt, contextText, systemPrompt)
		if err == nil {
			return response, nil
		}
		logger.Sugar.Warnw("completion provider failed", "provider", p.Name, "error", err)
	}
	return "", apperrors.ErrAIUnavailable
}
