package domain

import "strings"

// Classification is the closed label set for uploaded documents.
type Classification string

const (
	StudentTranscript  Classification = "Student Result / Transcript Document"
	ProgrammeStructure Classification = "Programme Structure Document"
	Unclassified       Classification = "Unclassified Document"
)

// classificationRules is evaluated in order, first match wins. The order is
// load-bearing: "credit hours" contains the bare substring "credit", so the
// transcript rule claims almost every structure document that mentions
// credit hours. Tests pin this behavior.
var classificationRules = []struct {
	keywords []string
	label    Classification
}{
	{[]string{"transcript", "grade", "gpa", "credit"}, StudentTranscript},
	{[]string{"compulsory courses", "programme structure", "credit hours"}, ProgrammeStructure},
}

// Classify labels a text blob by case-insensitive substring matching against
// the ordered rule table. Pure and deterministic.
func Classify(text string) Classification {
	lowered := strings.ToLower(text)
	for _, rule := range classificationRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lowered, keyword) {
				return rule.label
			}
		}
	}
	return Unclassified
}
