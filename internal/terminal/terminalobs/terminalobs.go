package terminalobs

import (
	"context"
	"time"

	"mt5-summary-bot/internal/interfaces"
	"mt5-summary-bot/internal/logger"
	"mt5-summary-bot/internal/trace"
	"mt5-summary-bot/internal/types"
)

// observableTerminal wraps a Terminal with observability (logging & tracing)
type observableTerminal struct {
	terminal interfaces.Terminal
}

// Compile-time interface check
var _ interfaces.Terminal = (*observableTerminal)(nil)

// Wrap wraps a terminal with observability middleware. Sessions returned by
// Connect are wrapped as well.
func Wrap(terminal interfaces.Terminal) interfaces.Terminal {
	return &observableTerminal{terminal: terminal}
}

func (ot *observableTerminal) Connect(ctx context.Context) (interfaces.Session, error) {
	ctx, span := trace.StartSpan(ctx, "terminal.Connect")
	defer span.End()

	logger.InfoSkip(ctx, 1, "Connecting to terminal")

	sess, err := ot.terminal.Connect(ctx)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to connect to terminal", err)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Terminal session established")
	return &observableSession{session: sess}, nil
}

type observableSession struct {
	session interfaces.Session
}

var _ interfaces.Session = (*observableSession)(nil)

func (os *observableSession) DealsRange(ctx context.Context, from, to time.Time) ([]types.Deal, error) {
	ctx, span := trace.StartSpan(ctx, "terminal.DealsRange")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Querying deal history", "from", from, "to", to)

	deals, err := os.session.DealsRange(ctx, from, to)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to query deal history", err, "from", from, "to", to)
		return nil, err
	}

	logger.DebugSkip(ctx, 1, "Deal history fetched", "count", len(deals))
	return deals, nil
}

func (os *observableSession) OpenPositions(ctx context.Context) ([]types.Position, error) {
	ctx, span := trace.StartSpan(ctx, "terminal.OpenPositions")
	defer span.End()

	positions, err := os.session.OpenPositions(ctx)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch open positions", err)
		return nil, err
	}

	logger.DebugSkip(ctx, 1, "Open positions fetched", "count", len(positions))
	return positions, nil
}

func (os *observableSession) AccountInfo(ctx context.Context) (types.AccountInfo, error) {
	ctx, span := trace.StartSpan(ctx, "terminal.AccountInfo")
	defer span.End()

	info, err := os.session.AccountInfo(ctx)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch account info", err)
		return types.AccountInfo{}, err
	}

	logger.DebugSkip(ctx, 1, "Account info fetched", "balance", info.Balance, "equity", info.Equity)
	return info, nil
}

func (os *observableSession) Close(ctx context.Context) error {
	ctx, span := trace.StartSpan(ctx, "terminal.Close")
	defer span.End()

	if err := os.session.Close(ctx); err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to close terminal session", err)
		return err
	}
	logger.InfoSkip(ctx, 1, "Terminal session closed")
	return nil
}
