package models

import "fmt"

// ClaimDetails is the field mapping extracted from a free-text query by the
// structuring stage. All fields are optional; an empty map is valid. Values
// are passed through as the model returned them, without type validation.
//
// Known keys: age, gender, medical_procedure, location, policy_duration_months.
type ClaimDetails map[string]any

// Decision values the synthesis stage is allowed to return.
const (
	DecisionApproved = "Approved"
	DecisionRejected = "Rejected"
)

// AmountNotApplicable is the literal amount used when the clauses state no
// figure or coverage percentage.
const AmountNotApplicable = "Not Applicable"

// Justification ties one policy clause to the reasoning it supports.
type Justification struct {
	ClauseText string `json:"clause_text"`
	Reasoning  string `json:"reasoning"`
}

// Decision is the terminal output of the pipeline. Produced fresh per request,
// never persisted.
type Decision struct {
	Decision      string          `json:"decision"`
	Amount        string          `json:"amount"`
	Justification []Justification `json:"justification"`
}

// Validate checks the fields the service refuses to trust blindly: the
// decision enum must be one of the two allowed values, and an empty amount
// is normalized to "Not Applicable". Everything else is pass-through.
func (d *Decision) Validate() error {
	if d.Decision != DecisionApproved && d.Decision != DecisionRejected {
		return fmt.Errorf("unexpected decision value %q (want %q or %q)", d.Decision, DecisionApproved, DecisionRejected)
	}
	if d.Amount == "" {
		d.Amount = AmountNotApplicable
	}
	return nil
}

// QueryRequest is the body of POST /api/v1/query.
type QueryRequest struct {
	Query string `json:"query"`
}
