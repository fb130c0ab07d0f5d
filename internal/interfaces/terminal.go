package interfaces

import (
	"context"
	"time"

	"mt5-summary-bot/internal/types"
)

// Terminal is the upstream trading-terminal connection. Connect performs the
// initialize+login handshake and hands back a Session; queries are only
// possible through a live Session, so "query without connection" cannot be
// expressed.
type Terminal interface {
	Connect(ctx context.Context) (Session, error)
}

// Session is an authenticated terminal connection. Close must be called when
// the caller is done, including on error paths.
type Session interface {
	DealsRange(ctx context.Context, from, to time.Time) ([]types.Deal, error)
	OpenPositions(ctx context.Context) ([]types.Position, error)
	AccountInfo(ctx context.Context) (types.AccountInfo, error)
	Close(ctx context.Context) error
}
