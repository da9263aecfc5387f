package domain

import (
	"regexp"
	"strconv"
)

// Transcripts come in English and Malay, so both token sets are matched:
// total/jumlah, passed/lulus, credit(s)/kredit. Credit totals are assumed
// below 1000; the trailing \b keeps a 4-digit run from matching its prefix.
var (
	totalCreditsPattern  = regexp.MustCompile(`(?i)(?:jumlah|total)\s*(?:kredit|credits?)?\s*[:\-]?\s*(\d{1,3})\b`)
	passedCreditsPattern = regexp.MustCompile(`(?i)(?:lulus|passed)\s*(?:kredit|credits?)?\s*[:\-]?\s*(\d{1,3})\b`)
)

// CreditSummary holds the credit fields found in a transcript. Either field
// may be absent independently of the other.
type CreditSummary struct {
	TotalRequired *int `json:"total_required,omitempty"`
	CreditsPassed *int `json:"credits_passed,omitempty"`
}

// Remaining is total minus passed, defined only when both fields were found.
// No clamping: an inconsistent transcript yields a negative value and the
// caller is expected to surface it as-is.
func (s CreditSummary) Remaining() (int, bool) {
	if s.TotalRequired == nil || s.CreditsPassed == nil {
		return 0, false
	}
	return *s.TotalRequired - *s.CreditsPassed, true
}

// Complete reports whether both credit fields were found.
func (s CreditSummary) Complete() bool {
	return s.TotalRequired != nil && s.CreditsPassed != nil
}

// ExtractCredits scans transcript text for total-required and passed credit
// counts. Each pattern matches independently and first match wins; absence
// of a field is not an error.
func ExtractCredits(text string) CreditSummary {
	var summary CreditSummary
	if m := totalCreditsPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			summary.TotalRequired = &n
		}
	}
	if m := passedCreditsPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			summary.CreditsPassed = &n
		}
	}
	return summary
}
