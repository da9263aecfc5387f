package ports

import (
	"context"

	"github.com/04divya/credit-transfer-checker/internal/core/domain"
)

// TextExtractor converts an uploaded document into plain text. An empty
// result with nil error is not possible: no obtainable text is reported as
// an error wrapping domain.ErrExtractionFailed.
type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.Document) (string, error)
}

// Embedder builds dense vectors for texts. The model identity is fixed at
// startup; for a fixed model version the output is deterministic.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// OCRBackend recognizes text in a single image. Format is the image file
// type as reported by the container ("png", "jpg", ...).
type OCRBackend interface {
	Recognize(ctx context.Context, image []byte, format string) (string, error)
}
