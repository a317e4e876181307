// Package llm provides the text-generation client used by the claims pipeline.
package llm

import "context"

// Client sends a plain-text prompt to a generative language model and returns
// the raw text of the response. Callers own all parsing of that text.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}
