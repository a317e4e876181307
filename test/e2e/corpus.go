// Package e2e provides end-to-end tests over a synthetic policy corpus.
package e2e

import (
	"fmt"
	"strings"
)

// PolicyDocument is one policy file in the corpus. Each clause becomes its
// own paragraph, so ingestion indexes one chunk per clause.
type PolicyDocument struct {
	Name    string
	Clauses []string
}

// ClaimCase is one end-to-end scenario: the user's query, the responses the
// model is scripted to return, and what the final decision must look like.
// ExpectedClause must show up in the synthesis prompt, proving that retrieval
// surfaced the right clause for the decision.
type ClaimCase struct {
	Description      string
	Query            string
	StructuredJSON   string
	DecisionJSON     string
	ExpectedDecision string
	ExpectedClause   string
}

// Corpus holds policy documents and claim scenarios.
type Corpus struct {
	Documents    []PolicyDocument
	Cases        []ClaimCase
	TotalClauses int
}

// BuildCorpus returns a small health-insurance policy corpus. Every clause
// carries a distinctive phrase so a scenario can assert the right clause was
// retrieved.
func BuildCorpus() *Corpus {
	docs := []PolicyDocument{
		{
			Name: "surgical-benefits.docx",
			Clauses: []string{
				"Orthopedic surgery, including knee surgery and hip replacement, is covered at 80% of the sum insured after a 90-day waiting period.",
				"Cardiac surgery is covered at 100% of the sum insured in network hospitals.",
				"Cosmetic surgery is excluded from coverage unless medically necessary following an accident.",
			},
		},
		{
			Name: "general-conditions.docx",
			Clauses: []string{
				"Pre-existing conditions are excluded during the first 24 months of the policy.",
				"Claims must be filed within 30 days of discharge from the hospital.",
				"Treatment obtained in Pune, Mumbai and Delhi network hospitals is settled on a cashless basis.",
			},
		},
		{
			Name: "exclusions.docx",
			Clauses: []string{
				"Dental procedures are excluded unless necessitated by accidental injury.",
				"Maternity benefits require a continuous policy duration of at least 36 months.",
			},
		},
	}

	cases := []ClaimCase{
		{
			Description:      "knee surgery covered at 80 percent",
			Query:            "46-year-old male, knee surgery in Pune, 3-month-old insurance policy",
			StructuredJSON:   "```json\n{\"age\": 46, \"gender\": \"male\", \"medical_procedure\": \"knee surgery\", \"location\": \"Pune\", \"policy_duration_months\": 3}\n```",
			DecisionJSON:     `{"decision": "Approved", "amount": "80% of the sum insured", "justification": [{"clause_text": "Orthopedic surgery, including knee surgery and hip replacement, is covered at 80% of the sum insured after a 90-day waiting period.", "reasoning": "Knee surgery is an orthopedic procedure covered by the policy."}]}`,
			ExpectedDecision: "Approved",
			ExpectedClause:   "knee surgery and hip replacement",
		},
		{
			Description:      "maternity rejected for short policy",
			Query:            "29F, maternity claim, policy held for 1 year",
			StructuredJSON:   `{"age": 29, "gender": "female", "medical_procedure": "maternity", "policy_duration_months": 12}`,
			DecisionJSON:     `{"decision": "Rejected", "amount": "Not Applicable", "justification": [{"clause_text": "Maternity benefits require a continuous policy duration of at least 36 months.", "reasoning": "The policy has only been held for 12 months."}]}`,
			ExpectedDecision: "Rejected",
			ExpectedClause:   "Maternity benefits require",
		},
		{
			Description:      "dental excluded without accident",
			Query:            "dental procedures claim, 2 year policy",
			StructuredJSON:   `{"medical_procedure": "dental procedures", "policy_duration_months": 24}`,
			DecisionJSON:     `{"decision": "Rejected", "amount": "Not Applicable", "justification": [{"clause_text": "Dental procedures are excluded unless necessitated by accidental injury.", "reasoning": "No accidental injury is mentioned in the claim."}]}`,
			ExpectedDecision: "Rejected",
			ExpectedClause:   "Dental procedures are excluded",
		},
	}

	total := 0
	for _, d := range docs {
		total += len(d.Clauses)
	}
	return &Corpus{Documents: docs, Cases: cases, TotalClauses: total}
}

// Validate reports corpus construction mistakes, mainly scenarios whose
// expected clause does not exist in any document.
func (c *Corpus) Validate() error {
	if len(c.Documents) == 0 || len(c.Cases) == 0 {
		return fmt.Errorf("corpus needs documents and cases")
	}
	for _, tc := range c.Cases {
		if !c.containsClause(tc.ExpectedClause) {
			return fmt.Errorf("case %q expects clause %q which no document contains", tc.Description, tc.ExpectedClause)
		}
	}
	return nil
}

func (c *Corpus) containsClause(fragment string) bool {
	if fragment == "" {
		return false
	}
	for _, d := range c.Documents {
		for _, clause := range d.Clauses {
			if strings.Contains(clause, fragment) {
				return true
			}
		}
	}
	return false
}
