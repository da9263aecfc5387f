package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/04divya/credit-transfer-checker/internal/core/domain"
	"github.com/04divya/credit-transfer-checker/internal/core/ports"
)

// SimilarityEngine computes the two independent similarity measures between
// a transcript and a structure document. The embedding model behind the
// Embedder port is loaded once at process start and treated as immutable,
// so the engine is safe for concurrent use.
type SimilarityEngine struct {
	embedder ports.Embedder
}

func NewSimilarityEngine(embedder ports.Embedder) *SimilarityEngine {
	return &SimilarityEngine{embedder: embedder}
}

// Score embeds both texts in one backend call and computes the dense and
// lexical cosine similarities as percentages. Callers must not pass empty
// text; extraction failures are filtered out by the orchestrator first.
func (e *SimilarityEngine) Score(ctx context.Context, textA, textB string) (domain.SimilarityScores, error) {
	vectors, err := e.embedder.Embed(ctx, []string{textA, textB})
	if err != nil {
		return domain.SimilarityScores{}, fmt.Errorf("embed texts: %w", err)
	}
	if len(vectors) != 2 {
		return domain.SimilarityScores{}, fmt.Errorf("embed texts: expected 2 vectors, got %d", len(vectors))
	}

	return domain.SimilarityScores{
		Embedding: embeddingPercent(cosine(vectors[0], vectors[1])),
		Lexical:   lexicalCosine(textA, textB) * 100,
	}, nil
}

// embeddingPercent maps raw cosine similarity from its nominal [-1, 1] range
// onto a percentage via (cos+1)/2*100. This mapping was chosen over direct
// cos*100 scaling because general-purpose sentence embeddings can produce
// negative cosines for unrelated texts; the result is clamped into [0, 100].
func embeddingPercent(cos float64) float64 {
	pct := (cos + 1) / 2 * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// cosine over float32 vectors with float64 accumulation. Mismatched or
// zero-magnitude vectors are degenerate and score 0.
func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / math.Sqrt(normA*normB)
}
