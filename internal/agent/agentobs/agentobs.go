package agentobs

import (
	"context"

	"mt5-summary-bot/internal/interfaces"
	"mt5-summary-bot/internal/logger"
	"mt5-summary-bot/internal/trace"
	"mt5-summary-bot/internal/types"
)

// observableRunner wraps a Runner with observability (logging & tracing)
type observableRunner struct {
	runner interfaces.Runner
}

// Compile-time interface check
var _ interfaces.Runner = (*observableRunner)(nil)

// Wrap wraps a runner with observability middleware
func Wrap(runner interfaces.Runner) interfaces.Runner {
	return &observableRunner{runner: runner}
}

func (or *observableRunner) Run(ctx context.Context) (*types.RunResult, error) {
	ctx, span := trace.StartSpan(ctx, "agent.Run")
	defer span.End()

	logger.InfoSkip(ctx, 1, "Starting summary run")

	result, err := or.runner.Run(ctx)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Summary run failed", err)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Summary run finished",
		"periods", len(result.Summaries),
		"sent", result.Sent,
		"errors", len(result.Errors))
	return result, nil
}
