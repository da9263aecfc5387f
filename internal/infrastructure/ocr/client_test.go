package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/04divya/credit-transfer-checker/internal/infrastructure/resilience"
)

func testExecutor() *resilience.Executor {
	return resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts:    1,
		RetryInitialBackoff: time.Millisecond,
		RetryMaxBackoff:     time.Millisecond,
		BreakerEnabled:      false,
	})
}

func TestRecognizeSendsEncodedImage(t *testing.T) {
	image := []byte{0x89, 0x50, 0x4E, 0x47}

	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ocr" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]string{"text": "JUMLAH KREDIT: 122"})
	}))
	defer server.Close()

	client := New(server.URL, "eng+msa", testExecutor())
	text, err := client.Recognize(context.Background(), image, "png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "JUMLAH KREDIT: 122" {
		t.Fatalf("unexpected text %q", text)
	}
	if gotBody["image"] != base64.StdEncoding.EncodeToString(image) {
		t.Fatalf("image bytes must be base64 encoded")
	}
	if gotBody["format"] != "png" || gotBody["languages"] != "eng+msa" {
		t.Fatalf("unexpected request fields: %v", gotBody)
	}
}

func TestRecognizeRejectsEmptyImage(t *testing.T) {
	client := New("http://127.0.0.1:1", "eng", testExecutor())
	if _, err := client.Recognize(context.Background(), nil, "png"); err == nil {
		t.Fatalf("expected error for empty image")
	}
}

func TestRecognizeBackendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "engine crashed", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL, "eng", testExecutor())
	if _, err := client.Recognize(context.Background(), []byte{0x01}, "png"); err == nil {
		t.Fatalf("expected error for backend failure")
	}
}

func TestClassifyOCRError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"canceled", context.Canceled, false},
		{"server error", &statusError{StatusCode: http.StatusInternalServerError}, true},
		{"too many requests", &statusError{StatusCode: http.StatusTooManyRequests}, true},
		{"bad request", &statusError{StatusCode: http.StatusBadRequest}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyOCRError(tt.err); got.Retryable != tt.retryable {
				t.Fatalf("retryable = %v, want %v", got.Retryable, tt.retryable)
			}
		})
	}
}
