// Package embedding produces vector embeddings for clause and query text.
// The same embedder instance serves both ingestion and retrieval so that
// stored and query vectors live in the same space.
package embedding

import "context"

// Embedder produces unit-normalized vector embeddings for text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}
