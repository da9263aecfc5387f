package domain

import "time"

type MimeKind string

const (
	MimePDF   MimeKind = "pdf"
	MimeImage MimeKind = "image"
)

// Document is one uploaded artifact. It lives for the duration of a single
// analysis run and is never persisted.
type Document struct {
	ID            string    `json:"id"`
	Filename      string    `json:"filename"`
	MimeKind      MimeKind  `json:"mime_kind"`
	RawBytes      []byte    `json:"-"`
	ExtractedText string    `json:"extracted_text,omitempty"`
	UploadedAt    time.Time `json:"uploaded_at"`
}

// KindFromContentType maps an upload content type onto the two supported
// document kinds. Anything that is not a PDF is handed to OCR as an image.
func KindFromContentType(contentType string) MimeKind {
	if contentType == "application/pdf" {
		return MimePDF
	}
	return MimeImage
}

// SimilarityScores carries both similarity measures as percentages in
// [0, 100]. Full float64 precision is kept here; rounding to two decimals
// happens only at the presentation edge.
type SimilarityScores struct {
	Embedding float64 `json:"embedding_similarity"`
	Lexical   float64 `json:"lexical_similarity"`
}

// ComparisonResult is the outcome of scoring the transcript against one
// structure document. Results are collected in upload order.
type ComparisonResult struct {
	StructureDocumentID string           `json:"structure_document_id"`
	Classification      Classification   `json:"classification"`
	ExtractedText       string           `json:"extracted_text,omitempty"`
	Scores              SimilarityScores `json:"scores"`
}
