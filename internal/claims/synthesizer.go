package claims

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/coverwise/claimlens/internal/llm"
	"github.com/coverwise/claimlens/internal/models"
	"github.com/coverwise/claimlens/pkg/utils"
)

// Synthesizer produces the final claim decision from structured details and
// retrieved clause context.
type Synthesizer struct {
	client llm.Client
}

// NewSynthesizer returns a synthesizer backed by the given model client.
func NewSynthesizer(client llm.Client) *Synthesizer {
	return &Synthesizer{client: client}
}

// Synthesize asks the model to decide the claim strictly from the supplied
// clauses. The claim details are pretty-printed and the context rendered as a
// bulleted list inside a fixed prompt. The model's fenced-or-raw JSON answer
// is stripped, parsed and validated against the decision schema.
func (s *Synthesizer) Synthesize(ctx context.Context, details models.ClaimDetails, clauses []string) (*models.Decision, error) {
	detailsJSON, err := json.MarshalIndent(details, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render claim details: %w", err)
	}

	prompt := fmt.Sprintf(analysisPrompt, detailsJSON, strings.Join(clauses, "\n- "))
	raw, err := s.client.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("synthesize decision: %w", err)
	}

	var decision models.Decision
	if err := json.Unmarshal([]byte(utils.StripCodeFence(raw)), &decision); err != nil {
		return nil, &ModelOutputError{Stage: "synthesize", Err: err}
	}
	if err := decision.Validate(); err != nil {
		return nil, &ModelOutputError{Stage: "synthesize", Err: err}
	}
	return &decision, nil
}
