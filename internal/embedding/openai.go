package embedding

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIEncoder calls an OpenAI-compatible /v1/embeddings endpoint.
type OpenAIEncoder struct {
	client *openai.Client
	model  string
}

// NewOpenAIEncoder creates an encoder. An empty baseURL uses the OpenAI API.
func NewOpenAIEncoder(apiKey, baseURL, model string, timeout time.Duration) (*OpenAIEncoder, error) {
	if apiKey == "" {
		return nil, errors.New("openai encoder: api key is required")
	}
	if model == "" {
		return nil, errors.New("openai encoder: model is required")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &OpenAIEncoder{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

func (e *OpenAIEncoder) Encode(ctx context.Context, text string) ([]float32, error) {
	vs, err := e.EncodeBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vs[0], nil
}

func (e *OpenAIEncoder) EncodeBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.model),
		Input: texts,
	})
	if err != nil {
		return nil, classifyOpenAI(err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("openai embed: got %d vectors for %d inputs", len(resp.Data), len(texts))
	}

	data := resp.Data
	sort.Slice(data, func(i, j int) bool { return data[i].Index < data[j].Index })
	out := make([][]float32, len(data))
	for i, d := range data {
		v := make([]float32, len(d.Embedding))
		for k := range d.Embedding {
			v[k] = float32(d.Embedding[k])
		}
		out[i] = v
	}
	return out, nil
}

func (e *OpenAIEncoder) Model() string {
	return "openai:" + e.model
}

func classifyOpenAI(err error) error {
	wrapped := fmt.Errorf("openai embed: %w", err)

	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}
	if status == http.StatusTooManyRequests || status >= http.StatusInternalServerError {
		return &RetryableError{Err: wrapped}
	}
	return classify(wrapped)
}
