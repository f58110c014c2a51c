package ai

import (
	"fmt"

	"github.com/jhoicas/Contable-api/internal/application/ports"
	"github.com/jhoicas/Contable-api/pkg/config"
)

// NewTextGenerator elige el adaptador según AI_PROVIDER.
func NewTextGenerator(cfg config.AIConfig) (ports.TextGenerator, error) {
	switch cfg.Provider {
	case config.AIProviderGemini, "":
		return NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel), nil
	case config.AIProviderAnthropic:
		return NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel), nil
	case config.AIProviderOpenAI:
		svc, err := NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel, "")
		if err != nil {
			return nil, err
		}
		return svc, nil
	case config.AIProviderNone:
		return Disabled{}, nil
	default:
		return nil, fmt.Errorf("AI_PROVIDER desconocido: %q", cfg.Provider)
	}
}
