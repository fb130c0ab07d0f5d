package interfaces

import "context"

// Analyzer turns an analysis prompt into free-text insight. Implementations
// may return an empty string to signal that analysis is disabled.
type Analyzer interface {
	Analyze(ctx context.Context, prompt string) (string, error)
}
