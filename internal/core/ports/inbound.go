package ports

import (
	"context"

	"github.com/04divya/credit-transfer-checker/internal/core/domain"
)

// TransferAnalyzer is the inbound contract for the comparison orchestrator.
// Submit runs one synchronous analysis of a transcript against structure
// documents and returns the resulting snapshot.
type TransferAnalyzer interface {
	Submit(ctx context.Context, transcript *domain.Document, structures []*domain.Document) (domain.AnalysisSnapshot, error)
	Snapshot() domain.AnalysisSnapshot
	Reset() domain.AnalysisSnapshot
}

// SimilarityScorer computes both similarity measures between two texts.
type SimilarityScorer interface {
	Score(ctx context.Context, textA, textB string) (domain.SimilarityScores, error)
}
