package noop

import (
	"context"

	"mt5-summary-bot/internal/logger"
)

// NoopAnalyzer is the fallback when no LLM provider is configured.
type NoopAnalyzer struct{}

// NewNoopAnalyzer returns an analyzer that always yields an empty analysis,
// which the formatter omits from the report.
func NewNoopAnalyzer() *NoopAnalyzer {
	return &NoopAnalyzer{}
}

func (a *NoopAnalyzer) Analyze(ctx context.Context, prompt string) (string, error) {
	logger.Debug(ctx, "Noop analyzer called - analysis disabled")
	return "", nil
}
