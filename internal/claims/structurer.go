package claims

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/coverwise/claimlens/internal/llm"
	"github.com/coverwise/claimlens/internal/models"
	"github.com/coverwise/claimlens/pkg/utils"
)

// Structurer turns a free-text query into structured claim details.
type Structurer struct {
	client llm.Client
}

// NewStructurer returns a structurer backed by the given model client.
func NewStructurer(client llm.Client) *Structurer {
	return &Structurer{client: client}
}

// Structure asks the model to extract claim entities from the query. The
// model's answer may arrive wrapped in a markdown code fence; fences are
// stripped before parsing. Field values are trusted as the model produced
// them, with no type checks.
func (s *Structurer) Structure(ctx context.Context, query string) (models.ClaimDetails, error) {
	prompt := fmt.Sprintf(structuringPrompt, query)
	raw, err := s.client.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("structure query: %w", err)
	}

	var details models.ClaimDetails
	if err := json.Unmarshal([]byte(utils.StripCodeFence(raw)), &details); err != nil {
		return nil, &ModelOutputError{Stage: "structure", Err: err}
	}
	return details, nil
}
