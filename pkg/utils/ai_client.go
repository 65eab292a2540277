package utils

import (
	"context"
	"fmt"
	"strings"
)

// AIClientInterface is the opaque text-completion collaborator. Prompt
// construction and response parsing live in the analysis service; clients
// only move text.
type AIClientInterface interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// NewAIClient builds either an OpenAI or Gemini client based on config.
func NewAIClient(provider, apiKey, model string) (AIClientInterface, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAIClient(apiKey, model), nil
	case "gemini":
		return NewGeminiClient(apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", provider)
	}
}
