package httpadapter

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/04divya/credit-transfer-checker/internal/config"
	"github.com/04divya/credit-transfer-checker/internal/core/domain"
	"github.com/04divya/credit-transfer-checker/internal/core/ports"
	"github.com/04divya/credit-transfer-checker/internal/export"
	"github.com/04divya/credit-transfer-checker/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	cfg      config.Config
	analyzer ports.TransferAnalyzer
	exporter *export.Service
	metrics  *metrics.ServerMetrics
}

func NewRouter(
	cfg config.Config,
	analyzer ports.TransferAnalyzer,
	exporter *export.Service,
	m *metrics.ServerMetrics,
) *Router {
	return &Router{
		cfg:      cfg,
		analyzer: analyzer,
		exporter: exporter,
		metrics:  m,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/analyses", rt.submitAnalysis)
	mux.HandleFunc("/v1/analyses/current", rt.currentAnalysis)
	mux.HandleFunc("/v1/analyses/reset", rt.resetAnalysis)
	mux.HandleFunc("/v1/analyses/current/report", rt.downloadReport)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxInFlight, 100*time.Millisecond)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// submitAnalysis accepts one multipart form with a single "transcript" file
// and one or more "structures" files, runs one synchronous analysis and
// responds with the resulting snapshot.
func (rt *Router) submitAnalysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	if err := r.ParseMultipartForm(rt.cfg.MaxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	transcriptHeaders := r.MultipartForm.File["transcript"]
	structureHeaders := r.MultipartForm.File["structures"]
	if len(transcriptHeaders) != 1 || len(structureHeaders) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "one 'transcript' file and at least one 'structures' file are required",
		})
		return
	}

	transcript, err := documentFromHeader(transcriptHeaders[0])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	structures := make([]*domain.Document, 0, len(structureHeaders))
	for _, header := range structureHeaders {
		doc, err := documentFromHeader(header)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		structures = append(structures, doc)
	}

	start := time.Now()
	snapshot, err := rt.analyzer.Submit(r.Context(), transcript, structures)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	rt.recordRun(snapshot, len(structures), time.Since(start))

	writeJSON(w, http.StatusOK, toSnapshotResponse(snapshot, rt.cfg.TextEchoLimit))
}

func (rt *Router) currentAnalysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, toSnapshotResponse(rt.analyzer.Snapshot(), rt.cfg.TextEchoLimit))
}

func (rt *Router) resetAnalysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, toSnapshotResponse(rt.analyzer.Reset(), rt.cfg.TextEchoLimit))
}

func (rt *Router) downloadReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	workbook, err := rt.exporter.BuildWorkbook(rt.analyzer.Snapshot())
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="credit-transfer-report.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(workbook)
}

func (rt *Router) recordRun(snapshot domain.AnalysisSnapshot, submitted int, duration time.Duration) {
	if rt.metrics == nil {
		return
	}
	rt.metrics.RecordAnalysisRun(serviceName, string(snapshot.State), len(snapshot.Results), duration)
	if snapshot.State == domain.StateFailed {
		rt.metrics.RecordSkippedDocuments(serviceName, "transcript", 1)
		rt.metrics.RecordSkippedDocuments(serviceName, "structure", submitted)
		return
	}
	rt.metrics.RecordSkippedDocuments(serviceName, "structure", submitted-len(snapshot.Results))
}

func documentFromHeader(header *multipart.FileHeader) (*domain.Document, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file %q", header.Filename)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read uploaded file %q", header.Filename)
	}

	return &domain.Document{
		ID:         uuid.NewString(),
		Filename:   header.Filename,
		MimeKind:   domain.KindFromContentType(header.Header.Get("Content-Type")),
		RawBytes:   raw,
		UploadedAt: time.Now().UTC(),
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
