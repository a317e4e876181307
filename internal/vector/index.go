// Package vector provides the similarity index over clause embeddings.
package vector

import "context"

// Index stores unit-normalized vectors keyed by clause ID and answers
// nearest-neighbor queries by cosine similarity.
type Index interface {
	Add(ctx context.Context, ids []string, vectors [][]float32) error
	Search(ctx context.Context, query []float32, k int) ([]*Result, error)
	Size() int
	Clear()
	Save(path string) error
	Load(path string) error
	Close() error
}

// Result is a single similarity hit.
type Result struct {
	ID    string
	Score float64 // cosine similarity for unit-normalized vectors
}
