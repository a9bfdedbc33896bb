package index

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaEmbedder adapts a langchaingo ollama client to the Embedder
// interface.
type OllamaEmbedder struct {
	llm *ollama.LLM
}

func NewOllamaEmbedder(serverURL, model string) (*OllamaEmbedder, error) {
	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}

	return &OllamaEmbedder{llm: llm}, nil
}

func (o *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := o.llm.CreateEmbedding(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedding model returned no vector")
	}

	return vectors[0], nil
}
