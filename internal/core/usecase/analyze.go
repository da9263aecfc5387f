package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/04divya/credit-transfer-checker/internal/core/domain"
	"github.com/04divya/credit-transfer-checker/internal/core/ports"
)

const missingCreditsNotice = "could not find credit information in the transcript"

// AnalyzeUseCase drives one analysis run: transcript extraction,
// classification and credit parsing, then per-structure-document scoring.
// It owns the snapshot for the current run; a new submit replaces it and
// Reset clears it. The mutex serializes submits so one run always completes
// before the next begins.
type AnalyzeUseCase struct {
	extractor ports.TextExtractor
	scorer    ports.SimilarityScorer

	mu       sync.Mutex
	snapshot domain.AnalysisSnapshot
}

func NewAnalyzeUseCase(extractor ports.TextExtractor, scorer ports.SimilarityScorer) *AnalyzeUseCase {
	return &AnalyzeUseCase{
		extractor: extractor,
		scorer:    scorer,
		snapshot:  domain.NewIdleSnapshot(),
	}
}

// Submit runs a full analysis. Both a transcript and at least one structure
// document are required; otherwise the orchestrator stays in its current
// state and reports invalid input. Transcript extraction failure ends the
// run as Failed; a structure document that cannot be extracted or scored is
// recorded as a warning and skipped without aborting its siblings.
func (uc *AnalyzeUseCase) Submit(
	ctx context.Context,
	transcript *domain.Document,
	structures []*domain.Document,
) (domain.AnalysisSnapshot, error) {
	if transcript == nil || len(structures) == 0 {
		return uc.Snapshot(), domain.WrapError(
			domain.ErrInvalidInput,
			"submit analysis",
			errors.New("a transcript and at least one structure document are required"),
		)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	run := domain.NewIdleSnapshot()
	run.State = domain.StateExtractingTranscript
	run.TranscriptID = transcript.Filename
	uc.snapshot = run

	transcriptText, err := uc.extractText(ctx, transcript)
	if err != nil {
		uc.snapshot.State = domain.StateFailed
		uc.snapshot.Error = "unable to extract text from the student transcript"
		return uc.snapshot.Clone(), nil
	}
	uc.snapshot.TranscriptText = transcriptText

	uc.snapshot.State = domain.StateClassifyingAndParsing
	uc.snapshot.TranscriptClassification = domain.Classify(transcriptText)
	uc.snapshot.Credits = domain.ExtractCredits(transcriptText)
	if !uc.snapshot.Credits.Complete() {
		uc.snapshot.Warnings = append(uc.snapshot.Warnings, missingCreditsNotice)
	}

	uc.snapshot.State = domain.StateProcessingStructures
	for _, structure := range structures {
		uc.processStructure(ctx, transcriptText, structure)
	}

	uc.snapshot.State = domain.StateComplete
	return uc.snapshot.Clone(), nil
}

func (uc *AnalyzeUseCase) processStructure(ctx context.Context, transcriptText string, structure *domain.Document) {
	text, err := uc.extractText(ctx, structure)
	if err != nil {
		uc.snapshot.Warnings = append(
			uc.snapshot.Warnings,
			fmt.Sprintf("unable to extract text from structure file: %s", structure.Filename),
		)
		return
	}

	scores, err := uc.scorer.Score(ctx, transcriptText, text)
	if err != nil {
		uc.snapshot.Warnings = append(
			uc.snapshot.Warnings,
			fmt.Sprintf("unable to score structure file: %s", structure.Filename),
		)
		return
	}

	uc.snapshot.Results = append(uc.snapshot.Results, domain.ComparisonResult{
		StructureDocumentID: structure.Filename,
		Classification:      domain.Classify(text),
		ExtractedText:       text,
		Scores:              scores,
	})
}

func (uc *AnalyzeUseCase) extractText(ctx context.Context, doc *domain.Document) (string, error) {
	text, err := uc.extractor.Extract(ctx, doc)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", domain.WrapError(domain.ErrExtractionFailed, "extract text", errors.New("empty extracted text"))
	}
	doc.ExtractedText = text
	return text, nil
}

// Snapshot returns a copy of the current run state.
func (uc *AnalyzeUseCase) Snapshot() domain.AnalysisSnapshot {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.snapshot.Clone()
}

// Reset discards the current run from any state and returns to Idle.
func (uc *AnalyzeUseCase) Reset() domain.AnalysisSnapshot {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.snapshot = domain.NewIdleSnapshot()
	return uc.snapshot.Clone()
}
