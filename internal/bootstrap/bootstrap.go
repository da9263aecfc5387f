package bootstrap

import (
	"github.com/04divya/credit-transfer-checker/internal/config"
	"github.com/04divya/credit-transfer-checker/internal/core/ports"
	"github.com/04divya/credit-transfer-checker/internal/core/usecase"
	"github.com/04divya/credit-transfer-checker/internal/export"
	"github.com/04divya/credit-transfer-checker/internal/infrastructure/extractor"
	"github.com/04divya/credit-transfer-checker/internal/infrastructure/llm/ollama"
	"github.com/04divya/credit-transfer-checker/internal/infrastructure/ocr"
	"github.com/04divya/credit-transfer-checker/internal/infrastructure/resilience"
)

type App struct {
	Config config.Config

	Analyzer ports.TransferAnalyzer
	Exporter *export.Service
}

// New wires the analysis pipeline. The embedding backend is connected once
// here and never swapped afterwards, which keeps scores reproducible for
// the lifetime of the process.
func New(cfg config.Config) *App {
	executor := resilience.NewExecutor(resilience.DefaultConfig())

	ocrBackend := ocr.New(cfg.OCRURL, cfg.OCRLanguages, executor)
	embedder := ollama.New(cfg.OllamaURL, cfg.OllamaEmbedModel, executor)

	textExtractor := extractor.New(ocrBackend)
	scorer := usecase.NewSimilarityEngine(embedder)
	analyzer := usecase.NewAnalyzeUseCase(textExtractor, scorer)

	return &App{
		Config:   cfg,
		Analyzer: analyzer,
		Exporter: export.NewService(),
	}
}
