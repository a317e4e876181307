package ingest

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/coverwise/claimlens/internal/embedding"
	"github.com/coverwise/claimlens/internal/models"
	"github.com/coverwise/claimlens/internal/storage"
	"github.com/coverwise/claimlens/internal/vector"
)

// Ingester runs the one-shot corpus ingestion: extract, chunk, embed, store.
type Ingester struct {
	loader   *Loader
	storage  storage.Storage
	embedder embedding.Embedder
	index    vector.Index
	dir      string
	logger   *zap.Logger
}

// Option configures an Ingester.
type Option func(*Ingester)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(i *Ingester) {
		i.logger = logger
	}
}

// NewIngester wires an ingester over the given components. dir is the
// directory holding the policy corpus.
func NewIngester(loader *Loader, st storage.Storage, emb embedding.Embedder, idx vector.Index, dir string, opts ...Option) *Ingester {
	ing := &Ingester{
		loader:   loader,
		storage:  st,
		embedder: emb,
		index:    idx,
		dir:      dir,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(ing)
	}
	return ing
}

// Run ingests the corpus unless clauses already exist. The guard makes
// ingestion one-shot: any non-zero clause count means the corpus has been
// indexed before, and the whole pass is skipped.
func (ing *Ingester) Run(ctx context.Context) error {
	count, err := ing.storage.CountClauses(ctx)
	if err != nil {
		return fmt.Errorf("count clauses: %w", err)
	}
	if count > 0 {
		ing.logger.Info("corpus already ingested, skipping",
			zap.Int64("clauses", count))
		return nil
	}

	files, err := ing.loader.Load(ing.dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		ing.logger.Warn("no documents found", zap.String("dir", ing.dir))
		return nil
	}

	var blocks []string
	for _, f := range files {
		blocks = append(blocks, f.Blocks...)
	}
	chunks := splitChunks(strings.Join(blocks, "\n\n"))
	if len(chunks) == 0 {
		ing.logger.Warn("documents contained no text", zap.String("dir", ing.dir))
		return nil
	}

	start := time.Now()
	embeddings, err := ing.embedder.EmbedBatch(ctx, chunks)
	if err != nil {
		return fmt.Errorf("embed corpus: %w", err)
	}

	now := time.Now()
	clauses := make([]*models.Clause, len(chunks))
	ids := make([]string, len(chunks))
	for i, text := range chunks {
		ids[i] = strconv.Itoa(i)
		clauses[i] = &models.Clause{
			ID:        ids[i],
			Content:   text,
			Position:  i,
			Embedding: embeddings[i],
			CreatedAt: now,
		}
	}

	for _, f := range files {
		src := &models.Source{
			ID:        uuid.New().String(),
			Path:      f.Path,
			Blocks:    len(f.Blocks),
			CreatedAt: now,
		}
		if err := ing.storage.CreateSource(ctx, src); err != nil {
			return fmt.Errorf("record source %s: %w", f.Path, err)
		}
	}
	if err := ing.storage.BatchCreateClauses(ctx, clauses); err != nil {
		return fmt.Errorf("store clauses: %w", err)
	}
	if err := ing.index.Add(ctx, ids, embeddings); err != nil {
		return fmt.Errorf("index clauses: %w", err)
	}

	ing.logger.Info("corpus ingested",
		zap.Int("documents", len(files)),
		zap.Int("clauses", len(chunks)),
		zap.Duration("took", time.Since(start)))
	return nil
}

// Reset clears the clause store and vector index so the next Run re-ingests
// from scratch.
func (ing *Ingester) Reset(ctx context.Context) error {
	if err := ing.storage.Reset(ctx); err != nil {
		return fmt.Errorf("reset storage: %w", err)
	}
	ing.index.Clear()
	ing.logger.Info("clause store and vector index cleared")
	return nil
}

// RebuildIndex repopulates an empty vector index from stored clauses by
// re-embedding their content. Used at startup when the persisted index file
// is missing but the clause store is populated.
func (ing *Ingester) RebuildIndex(ctx context.Context) error {
	if ing.index.Size() > 0 {
		return nil
	}
	clauses, err := ing.storage.ListClauses(ctx)
	if err != nil {
		return fmt.Errorf("list clauses: %w", err)
	}
	if len(clauses) == 0 {
		return nil
	}

	texts := make([]string, len(clauses))
	ids := make([]string, len(clauses))
	for i, c := range clauses {
		texts[i] = c.Content
		ids[i] = c.ID
	}
	embeddings, err := ing.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed clauses: %w", err)
	}
	if err := ing.index.Add(ctx, ids, embeddings); err != nil {
		return fmt.Errorf("index clauses: %w", err)
	}
	ing.logger.Info("vector index rebuilt", zap.Int("clauses", len(clauses)))
	return nil
}

// splitChunks splits the joined corpus text on blank lines, dropping chunks
// that are empty after trimming. Chunk text keeps its original whitespace.
func splitChunks(text string) []string {
	parts := strings.Split(text, "\n\n")
	chunks := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		chunks = append(chunks, p)
	}
	return chunks
}
