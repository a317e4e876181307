package claims

import (
	"context"

	"go.uber.org/zap"

	"github.com/coverwise/claimlens/internal/models"
)

// Pipeline runs the full query-to-decision flow. It is stateless per request
// and safe for concurrent use; the shared index and model client are
// read-only once ingestion has finished.
type Pipeline struct {
	structurer  *Structurer
	retriever   *Retriever
	synthesizer *Synthesizer
	logger      *zap.Logger
}

// NewPipeline assembles the three stages. logger may be nil.
func NewPipeline(structurer *Structurer, retriever *Retriever, synthesizer *Synthesizer, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		structurer:  structurer,
		retriever:   retriever,
		synthesizer: synthesizer,
		logger:      logger,
	}
}

// Process runs structure, retrieve and synthesize strictly in sequence. Any
// stage failure aborts the request; no partial result is returned. Retrieval
// uses the raw query text, not the structured details.
func (p *Pipeline) Process(ctx context.Context, query string) (*models.Decision, error) {
	p.logger.Info("processing query", zap.String("query", query))

	details, err := p.structurer.Structure(ctx, query)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("structured claim details", zap.Any("details", details))

	clauses, err := p.retriever.Retrieve(ctx, query)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("retrieved policy clauses", zap.Int("count", len(clauses)))

	decision, err := p.synthesizer.Synthesize(ctx, details, clauses)
	if err != nil {
		return nil, err
	}
	p.logger.Info("decision generated", zap.String("decision", decision.Decision))
	return decision, nil
}
