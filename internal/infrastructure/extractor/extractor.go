// Package extractor turns uploaded PDF and image documents into plain text.
// PDFs are read through their text layer first; scanned PDFs with no text
// layer fall back to OCR over the page images.
package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/04divya/credit-transfer-checker/internal/core/domain"
	"github.com/04divya/credit-transfer-checker/internal/core/ports"
)

type Extractor struct {
	ocr     ports.OCRBackend
	pdfConf *model.Configuration
}

func New(ocr ports.OCRBackend) *Extractor {
	return &Extractor{
		ocr:     ocr,
		pdfConf: model.NewDefaultConfiguration(),
	}
}

func (e *Extractor) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	if doc == nil || len(doc.RawBytes) == 0 {
		return "", domain.WrapError(domain.ErrInvalidInput, "extract text", errors.New("document has no content"))
	}

	switch doc.MimeKind {
	case domain.MimePDF:
		return e.extractPDF(ctx, doc)
	case domain.MimeImage:
		return e.extractImage(ctx, doc)
	default:
		return "", domain.WrapError(domain.ErrInvalidInput, "extract text", fmt.Errorf("unsupported mime kind %q", doc.MimeKind))
	}
}

func (e *Extractor) extractImage(ctx context.Context, doc *domain.Document) (string, error) {
	text, err := e.ocr.Recognize(ctx, doc.RawBytes, imageFormat(doc.Filename))
	if err != nil {
		return "", domain.WrapError(domain.ErrExtractionFailed, "ocr image", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", domain.WrapError(domain.ErrExtractionFailed, "ocr image", errors.New("no text recognized"))
	}
	return text, nil
}

func (e *Extractor) extractPDF(ctx context.Context, doc *domain.Document) (string, error) {
	text, layerErr := pdfTextLayer(doc.RawBytes)
	if strings.TrimSpace(text) != "" {
		return text, nil
	}

	text, ocrErr := e.ocrPDFImages(ctx, doc.RawBytes)
	if strings.TrimSpace(text) != "" {
		return text, nil
	}
	if ocrErr == nil {
		ocrErr = layerErr
	}
	if ocrErr == nil {
		ocrErr = errors.New("no text in any page")
	}
	return "", domain.WrapError(domain.ErrExtractionFailed, "extract pdf", ocrErr)
}

// pdfTextLayer concatenates the text layer of every page in page order.
// The pdf parser panics on some malformed files, so failures are converted
// to an error here instead of taking down the run.
func pdfTextLayer(raw []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("pdf text layer: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var b strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(pageText)
	}
	return b.String(), nil
}

// ocrPDFImages extracts the embedded page images of a scanned PDF and runs
// each through the OCR backend, in page order.
func (e *Extractor) ocrPDFImages(ctx context.Context, raw []byte) (string, error) {
	pageImages, err := api.ExtractImagesRaw(bytes.NewReader(raw), nil, e.pdfConf)
	if err != nil {
		return "", fmt.Errorf("extract pdf images: %w", err)
	}

	var b strings.Builder
	for _, byObject := range pageImages {
		objNrs := make([]int, 0, len(byObject))
		for objNr := range byObject {
			objNrs = append(objNrs, objNr)
		}
		sort.Ints(objNrs)

		for _, objNr := range objNrs {
			img := byObject[objNr]
			data, err := readImage(img)
			if err != nil {
				continue
			}
			text, err := e.ocr.Recognize(ctx, data, img.FileType)
			if err != nil {
				return "", fmt.Errorf("ocr pdf page %d: %w", img.PageNr, err)
			}
			if strings.TrimSpace(text) == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(text)
		}
	}
	return b.String(), nil
}

func readImage(img model.Image) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(img); err != nil {
		return nil, fmt.Errorf("read page image: %w", err)
	}
	return buf.Bytes(), nil
}

func imageFormat(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "jpeg" {
		return "jpg"
	}
	if ext == "" {
		return "png"
	}
	return ext
}
