package claims

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/coverwise/claimlens/internal/embedding"
	"github.com/coverwise/claimlens/internal/storage"
	"github.com/coverwise/claimlens/internal/vector"
)

// DefaultTopK is how many clauses the retriever returns when no bound is
// configured.
const DefaultTopK = 5

// Retriever finds the policy clauses most similar to a query.
type Retriever struct {
	embedder embedding.Embedder
	index    vector.Index
	storage  storage.Storage
	topK     int
	logger   *zap.Logger
}

// NewRetriever wires a retriever over the shared embedder, index and clause
// store. topK <= 0 falls back to DefaultTopK. logger may be nil.
func NewRetriever(emb embedding.Embedder, idx vector.Index, st storage.Storage, topK int, logger *zap.Logger) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Retriever{embedder: emb, index: idx, storage: st, topK: topK, logger: logger}
}

// Retrieve embeds the raw query text and returns the text of up to topK most
// similar clauses, most similar first. There is no similarity threshold: an
// empty index yields an empty slice, a small index yields what it has.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]string, error) {
	queryVec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := r.index.Search(ctx, queryVec, r.topK)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	texts := make([]string, 0, len(hits))
	for _, hit := range hits {
		clause, err := r.storage.GetClause(ctx, hit.ID)
		if err != nil {
			r.logger.Warn("indexed clause missing from store",
				zap.String("id", hit.ID), zap.Error(err))
			continue
		}
		texts = append(texts, clause.Content)
	}
	return texts, nil
}
