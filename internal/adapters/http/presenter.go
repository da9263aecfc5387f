package httpadapter

import (
	"math"

	"github.com/04divya/credit-transfer-checker/internal/core/domain"
)

// The wire representation rounds percentages to two decimals and caps the
// echoed extracted text; full precision stays inside the core.

type snapshotResponse struct {
	State                    string           `json:"state"`
	TranscriptID             string           `json:"transcript_id,omitempty"`
	TranscriptClassification string           `json:"transcript_classification,omitempty"`
	TranscriptText           string           `json:"transcript_text,omitempty"`
	Credits                  creditsResponse  `json:"credits"`
	Results                  []resultResponse `json:"results"`
	Warnings                 []string         `json:"warnings"`
	Error                    string           `json:"error,omitempty"`
}

type creditsResponse struct {
	TotalRequired *int `json:"total_required,omitempty"`
	CreditsPassed *int `json:"credits_passed,omitempty"`
	Remaining     *int `json:"remaining,omitempty"`
}

type resultResponse struct {
	StructureDocumentID string  `json:"structure_document_id"`
	Classification      string  `json:"classification"`
	ExtractedText       string  `json:"extracted_text,omitempty"`
	EmbeddingSimilarity float64 `json:"embedding_similarity"`
	LexicalSimilarity   float64 `json:"lexical_similarity"`
}

func toSnapshotResponse(snapshot domain.AnalysisSnapshot, textLimit int) snapshotResponse {
	out := snapshotResponse{
		State:                    string(snapshot.State),
		TranscriptID:             snapshot.TranscriptID,
		TranscriptClassification: string(snapshot.TranscriptClassification),
		TranscriptText:           truncate(snapshot.TranscriptText, textLimit),
		Credits: creditsResponse{
			TotalRequired: snapshot.Credits.TotalRequired,
			CreditsPassed: snapshot.Credits.CreditsPassed,
		},
		Results:  make([]resultResponse, 0, len(snapshot.Results)),
		Warnings: snapshot.Warnings,
		Error:    snapshot.Error,
	}
	if remaining, ok := snapshot.Credits.Remaining(); ok {
		out.Credits.Remaining = &remaining
	}
	for _, result := range snapshot.Results {
		out.Results = append(out.Results, resultResponse{
			StructureDocumentID: result.StructureDocumentID,
			Classification:      string(result.Classification),
			ExtractedText:       truncate(result.ExtractedText, textLimit),
			EmbeddingSimilarity: round2(result.Scores.Embedding),
			LexicalSimilarity:   round2(result.Scores.Lexical),
		})
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	return s[:limit]
}
