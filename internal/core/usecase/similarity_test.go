package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
)

type fakeEmbedder struct {
	vectors [][]float32
	err     error
	calls   int
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.vectors != nil {
		return f.vectors, nil
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

func (f *fakeEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := f.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func TestScoreIdenticalTextScoresFull(t *testing.T) {
	engine := NewSimilarityEngine(&fakeEmbedder{})

	text := "compulsory courses and total credit hours"
	scores, err := engine.Score(context.Background(), text, text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scores.Lexical != 100 {
		t.Fatalf("lexical score for identical text must be exactly 100, got %v", scores.Lexical)
	}
	if math.Abs(scores.Embedding-100) > 1e-9 {
		t.Fatalf("embedding score for identical vectors must be 100, got %v", scores.Embedding)
	}
}

func TestScoreOpposedVectorsMapToZero(t *testing.T) {
	engine := NewSimilarityEngine(&fakeEmbedder{
		vectors: [][]float32{{1, 0}, {-1, 0}},
	})

	scores, err := engine.Score(context.Background(), "alpha", "beta")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scores.Embedding != 0 {
		t.Fatalf("cosine -1 must map to 0 percent, got %v", scores.Embedding)
	}
}

func TestScoreOrthogonalVectorsMapToFifty(t *testing.T) {
	engine := NewSimilarityEngine(&fakeEmbedder{
		vectors: [][]float32{{1, 0}, {0, 1}},
	})

	scores, err := engine.Score(context.Background(), "alpha", "beta")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(scores.Embedding-50) > 1e-9 {
		t.Fatalf("cosine 0 must map to 50 percent, got %v", scores.Embedding)
	}
}

func TestScoreEmbedsBothTextsInOneCall(t *testing.T) {
	embedder := &fakeEmbedder{}
	engine := NewSimilarityEngine(embedder)

	if _, err := engine.Score(context.Background(), "one", "two"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if embedder.calls != 1 {
		t.Fatalf("expected a single backend call, got %d", embedder.calls)
	}
}

func TestScorePropagatesEmbedderError(t *testing.T) {
	backendErr := errors.New("backend down")
	engine := NewSimilarityEngine(&fakeEmbedder{err: backendErr})

	_, err := engine.Score(context.Background(), "one", "two")
	if !errors.Is(err, backendErr) {
		t.Fatalf("expected wrapped backend error, got %v", err)
	}
}

func TestScoreRejectsWrongVectorCount(t *testing.T) {
	engine := NewSimilarityEngine(&fakeEmbedder{
		vectors: [][]float32{{1, 0}},
	})

	if _, err := engine.Score(context.Background(), "one", "two"); err == nil {
		t.Fatalf("expected error for wrong vector count")
	}
}

func TestEmbeddingPercentClamps(t *testing.T) {
	if got := embeddingPercent(1.2); got != 100 {
		t.Fatalf("expected clamp to 100, got %v", got)
	}
	if got := embeddingPercent(-1.2); got != 0 {
		t.Fatalf("expected clamp to 0, got %v", got)
	}
}

func TestCosineDegenerateVectors(t *testing.T) {
	if got := cosine(nil, nil); got != 0 {
		t.Fatalf("empty vectors must score 0, got %v", got)
	}
	if got := cosine([]float32{1, 2}, []float32{1}); got != 0 {
		t.Fatalf("mismatched lengths must score 0, got %v", got)
	}
	if got := cosine([]float32{0, 0}, []float32{1, 1}); got != 0 {
		t.Fatalf("zero-magnitude vector must score 0, got %v", got)
	}
}
