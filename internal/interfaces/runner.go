package interfaces

import (
	"context"

	"mt5-summary-bot/internal/types"
)

// Runner executes one end-to-end summary workflow run.
type Runner interface {
	Run(ctx context.Context) (*types.RunResult, error)
}
