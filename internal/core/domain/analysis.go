package domain

type AnalysisState string

const (
	StateIdle                  AnalysisState = "idle"
	StateExtractingTranscript  AnalysisState = "extracting_transcript"
	StateFailed                AnalysisState = "failed"
	StateClassifyingAndParsing AnalysisState = "classifying_and_parsing"
	StateProcessingStructures  AnalysisState = "processing_structure_documents"
	StateComplete              AnalysisState = "complete"
)

// Terminal reports whether the state ends a run.
func (s AnalysisState) Terminal() bool {
	return s == StateFailed || s == StateComplete
}

// AnalysisSnapshot is the read model the presentation layer consumes. It is
// owned by the orchestrator, replaced on each submit and cleared on reset.
type AnalysisSnapshot struct {
	State AnalysisState `json:"state"`

	TranscriptID             string         `json:"transcript_id,omitempty"`
	TranscriptText           string         `json:"transcript_text,omitempty"`
	TranscriptClassification Classification `json:"transcript_classification,omitempty"`
	Credits                  CreditSummary  `json:"credits"`

	Results  []ComparisonResult `json:"results"`
	Warnings []string           `json:"warnings"`
	Error    string             `json:"error,omitempty"`
}

// NewIdleSnapshot returns the zero-run snapshot with non-nil slices so the
// presentation layer always renders empty sequences, never null.
func NewIdleSnapshot() AnalysisSnapshot {
	return AnalysisSnapshot{
		State:    StateIdle,
		Results:  []ComparisonResult{},
		Warnings: []string{},
	}
}

// Clone deep-copies the snapshot so callers cannot mutate orchestrator state
// through the returned slices.
func (s AnalysisSnapshot) Clone() AnalysisSnapshot {
	out := s
	out.Results = make([]ComparisonResult, len(s.Results))
	copy(out.Results, s.Results)
	out.Warnings = make([]string, len(s.Warnings))
	copy(out.Warnings, s.Warnings)
	if s.Credits.TotalRequired != nil {
		v := *s.Credits.TotalRequired
		out.Credits.TotalRequired = &v
	}
	if s.Credits.CreditsPassed != nil {
		v := *s.Credits.CreditsPassed
		out.Credits.CreditsPassed = &v
	}
	return out
}
