// Package cli provides CLI output helpers for ClaimLens.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/coverwise/claimlens/internal/models"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseFormat maps the --output flag value to an OutputFormat.
func ParseFormat(s string) (OutputFormat, error) {
	switch s {
	case "json":
		return OutputJSON, nil
	case "text", "":
		return OutputText, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text or json", s)
	}
}

// WriteDecision writes a claim decision to w in the given format.
func WriteDecision(w io.Writer, decision *models.Decision, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(decision)
	default:
		writeDecisionText(w, decision)
		return nil
	}
}

func writeDecisionText(w io.Writer, decision *models.Decision) {
	fmt.Fprintf(w, "decision: %s\n", decision.Decision)
	fmt.Fprintf(w, "amount:   %s\n", decision.Amount)
	for i, j := range decision.Justification {
		fmt.Fprintf(w, "\n# justification %d\n", i+1)
		fmt.Fprintf(w, "clause:    %s\n", j.ClauseText)
		fmt.Fprintf(w, "reasoning: %s\n", j.Reasoning)
	}
}

// Status is the corpus/index summary shown by the status command.
type Status struct {
	Sources         int64  `json:"sources"`
	Clauses         int64  `json:"clauses"`
	VectorIndexSize int    `json:"vector_index_size"`
	DiskUsageBytes  *int64 `json:"disk_usage_bytes,omitempty"`
}

// WriteStatus writes a status summary to w in the given format.
func WriteStatus(w io.Writer, status *Status, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	default:
		fmt.Fprintf(w, "sources:            %d   # ingested policy documents\n", status.Sources)
		fmt.Fprintf(w, "clauses:            %d   # indexed policy clauses\n", status.Clauses)
		fmt.Fprintf(w, "vector_index_size:  %d   # vectors in the similarity index\n", status.VectorIndexSize)
		if status.DiskUsageBytes != nil {
			fmt.Fprintf(w, "disk_usage_bytes:   %d   # database + index on disk\n", *status.DiskUsageBytes)
		}
		return nil
	}
}
