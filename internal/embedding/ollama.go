package embedding

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
)

// DefaultOllamaModel is Ollama's packaging of all-MiniLM-L6-v2 (384 dims).
const DefaultOllamaModel = "all-minilm"

// OllamaEncoder embeds text through an Ollama server.
type OllamaEncoder struct {
	embedder *embeddings.EmbedderImpl
	model    string
}

// NewOllamaEncoder creates an encoder for model on the server at serverURL.
// A zero timeout leaves requests bounded only by their context.
func NewOllamaEncoder(serverURL, model string, timeout time.Duration) (*OllamaEncoder, error) {
	if model == "" {
		model = DefaultOllamaModel
	}
	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
		ollama.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}
	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}
	return &OllamaEncoder{embedder: embedder, model: model}, nil
}

func (e *OllamaEncoder) Encode(ctx context.Context, text string) ([]float32, error) {
	v, err := e.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, classify(fmt.Errorf("ollama embed: %w", err))
	}
	return v, nil
}

func (e *OllamaEncoder) EncodeBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	v, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, classify(fmt.Errorf("ollama embed batch: %w", err))
	}
	return v, nil
}

func (e *OllamaEncoder) Model() string {
	return "ollama:" + e.model
}
