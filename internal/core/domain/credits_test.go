package domain

import "testing"

func TestExtractCreditsTotalEnglish(t *testing.T) {
	summary := ExtractCredits("Name: Divya\nTotal Credit: 122\nCGPA 3.5")
	if summary.TotalRequired == nil || *summary.TotalRequired != 122 {
		t.Fatalf("expected total required 122, got %v", summary.TotalRequired)
	}
}

func TestExtractCreditsPassedMalayWithLeadingZero(t *testing.T) {
	summary := ExtractCredits("LULUS Kredit - 045")
	if summary.CreditsPassed == nil || *summary.CreditsPassed != 45 {
		t.Fatalf("expected credits passed 45, got %v", summary.CreditsPassed)
	}
}

func TestExtractCreditsFourDigitNumberDoesNotMatch(t *testing.T) {
	summary := ExtractCredits("Total: 1234")
	if summary.TotalRequired != nil {
		t.Fatalf("expected no total match for 4-digit value, got %d", *summary.TotalRequired)
	}
}

func TestExtractCreditsFieldsAreIndependent(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantTotal  *int
		wantPassed *int
	}{
		{"both fields", "JUMLAH KREDIT: 122\nLULUS: 110", intPtr(122), intPtr(110)},
		{"total only", "Total credits 128", intPtr(128), nil},
		{"passed only", "Passed - 90", nil, intPtr(90)},
		{"neither", "no credit figures here at all", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := ExtractCredits(tt.text)
			if !intPtrEqual(summary.TotalRequired, tt.wantTotal) {
				t.Fatalf("total: got %v want %v", summary.TotalRequired, tt.wantTotal)
			}
			if !intPtrEqual(summary.CreditsPassed, tt.wantPassed) {
				t.Fatalf("passed: got %v want %v", summary.CreditsPassed, tt.wantPassed)
			}
		})
	}
}

func TestExtractCreditsFirstMatchWins(t *testing.T) {
	summary := ExtractCredits("Total Credit: 122\nTotal Credit: 130")
	if summary.TotalRequired == nil || *summary.TotalRequired != 122 {
		t.Fatalf("expected first match 122, got %v", summary.TotalRequired)
	}
}

func TestRemainingMayBeNegative(t *testing.T) {
	summary := ExtractCredits("total 100 passed 110")
	remaining, ok := summary.Remaining()
	if !ok {
		t.Fatalf("expected remaining to be defined")
	}
	if remaining != -10 {
		t.Fatalf("expected remaining -10 without clamping, got %d", remaining)
	}
}

func TestRemainingUndefinedWhenFieldMissing(t *testing.T) {
	summary := ExtractCredits("Total Credit: 122")
	if _, ok := summary.Remaining(); ok {
		t.Fatalf("remaining must be undefined when passed credits are absent")
	}
}

func intPtr(n int) *int { return &n }

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
