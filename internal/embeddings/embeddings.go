package embeddings

import (
	"context"
	"fmt"

	"github.com/evelynxu/marksearch/internal/config"
)

// Provider turns text into a fixed-dimensionality vector using an external
// embedding model. Implementations return an error rather than a partial or
// empty vector.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// NewProvider builds the provider selected in the configuration.
func NewProvider(cfg *config.Config) (Provider, error) {
	switch cfg.EmbeddingProvider {
	case config.ProviderOllama:
		return NewOllamaProvider(cfg), nil
	case config.ProviderOpenAI:
		return NewOpenAIProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.EmbeddingProvider)
	}
}
