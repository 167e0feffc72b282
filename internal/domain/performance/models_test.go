package performance

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusDraft, StatusSubmitted, true},
		{StatusSubmitted, StatusApproved, true},
		{StatusDraft, StatusApproved, false},
		{StatusSubmitted, StatusDraft, false},
		{StatusApproved, StatusSubmitted, false},
		{StatusApproved, StatusApproved, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
