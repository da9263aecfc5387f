// Package ocr is an HTTP client for the optical character recognition
// backend. The engine behind the endpoint is a black box; the only contract
// is image bytes in, recognized plain text out.
package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/04divya/credit-transfer-checker/internal/infrastructure/resilience"
)

type Client struct {
	baseURL    string
	languages  string
	httpClient *http.Client
	executor   *resilience.Executor
}

// New builds an OCR client. languages is the recognition language hint
// passed through to the backend, e.g. "eng+msa" for English plus Malay.
func New(baseURL, languages string, executor *resilience.Executor) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		languages:  languages,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		executor:   executor,
	}
}

func (c *Client) Recognize(ctx context.Context, image []byte, format string) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("ocr recognize: empty image")
	}

	request := map[string]any{
		"image":     base64.StdEncoding.EncodeToString(image),
		"format":    format,
		"languages": c.languages,
	}

	var response struct {
		Text string `json:"text"`
	}
	err := c.executor.Execute(ctx, "ocr_recognize", func(ctx context.Context) error {
		return c.postJSON(ctx, "/ocr", request, &response)
	}, classifyOCRError)
	if err != nil {
		return "", err
	}
	return response.Text, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal ocr request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create ocr request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ocr request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &statusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(raw)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode ocr response: %w", err)
	}
	return nil
}

type statusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *statusError) Error() string {
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("ocr status: %s", e.Status)
	}
	return fmt.Sprintf("ocr status: %s: %s", e.Status, strings.TrimSpace(e.Body))
}

func classifyOCRError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}
	if resilience.IsCircuitOpen(err) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}

	var statusErr *statusError
	if errors.As(err, &statusErr) {
		retryable := statusErr.StatusCode == http.StatusRequestTimeout ||
			statusErr.StatusCode == http.StatusTooManyRequests ||
			statusErr.StatusCode >= http.StatusInternalServerError
		return resilience.ErrorClassification{Retryable: retryable, RecordFailure: retryable}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}

	return resilience.ErrorClassification{Retryable: false, RecordFailure: true}
}
