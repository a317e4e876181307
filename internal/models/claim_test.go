package models

import "testing"

func TestDecisionValidate(t *testing.T) {
	tests := []struct {
		name       string
		decision   Decision
		wantErr    bool
		wantAmount string
	}{
		{"approved", Decision{Decision: DecisionApproved, Amount: "80%"}, false, "80%"},
		{"rejected", Decision{Decision: DecisionRejected, Amount: AmountNotApplicable}, false, AmountNotApplicable},
		{"empty amount normalized", Decision{Decision: DecisionApproved}, false, AmountNotApplicable},
		{"unknown enum", Decision{Decision: "Maybe", Amount: "10"}, true, ""},
		{"empty decision", Decision{}, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.decision.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && tt.decision.Amount != tt.wantAmount {
				t.Errorf("amount = %q, want %q", tt.decision.Amount, tt.wantAmount)
			}
		})
	}
}
