// Package gemini wraps the Gemini embedding API used to merge
// near-duplicate title/author strings during deduplication.
package gemini

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const embeddingModel = "text-embedding-004"

// Embedder produces embedding vectors for book strings.
type Embedder struct {
	client *genai.Client
}

// NewEmbedder creates an embedding client from an API key.
func NewEmbedder(ctx context.Context, apiKey string) (*Embedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Embedder{client: client}, nil
}

// Close releases the underlying client.
func (e *Embedder) Close() error {
	return e.client.Close()
}

// Embed returns one vector per input string, in input order.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	model := e.client.EmbeddingModel(embeddingModel)

	batch := model.NewBatch()
	for _, t := range texts {
		batch.AddContent(genai.Text(t))
	}

	res, err := model.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("failed to embed contents: %w", err)
	}

	if len(res.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(res.Embeddings))
	}

	vectors := make([][]float32, len(res.Embeddings))
	for i, emb := range res.Embeddings {
		vectors[i] = emb.Values
	}
	return vectors, nil
}
