package types

// DealEntry mirrors the terminal's deal entry kind.
type DealEntry int

const (
	DealEntryIn    DealEntry = 0 // opening leg
	DealEntryOut   DealEntry = 1 // closing leg
	DealEntryInOut DealEntry = 2 // reversal, not consumed by the aggregator
)

// Deal is one broker-reported execution record. Monetary fields are
// attributed to the closing leg by the terminal.
type Deal struct {
	Ticket, PositionID            int64
	Entry                         DealEntry
	Symbol                        string
	Volume, Price                 float64
	Profit, Swap, Commission, Fee float64
	Comment                       string
	Time                          int64
}

// StrategyPerf accumulates per-strategy performance inside a Summary.
type StrategyPerf struct {
	Trades int     `json:"trades"`
	PnL    float64 `json:"pnl"`
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
}

// Summary is the aggregate of all round trips in one query window.
// CompletedTrades counts matched entry/exit pairs, not raw deals.
type Summary struct {
	CompletedTrades int                     `json:"completed_trades"`
	TotalPnL        float64                 `json:"total_pnl"`
	Profit          float64                 `json:"profit"`
	Swap            float64                 `json:"swap"`
	Commission      float64                 `json:"commission"`
	WinningTrades   int                     `json:"winning_trades"`
	LosingTrades    int                     `json:"losing_trades"`
	WinRate         float64                 `json:"win_rate"`
	Strategies      map[string]StrategyPerf `json:"strategies"`
}

// Position is a currently open position snapshot.
type Position struct {
	Symbol       string  `json:"symbol"`
	Volume       float64 `json:"volume"`
	OpenPrice    float64 `json:"open_price"`
	CurrentPrice float64 `json:"current_price"`
	Profit       float64 `json:"profit"`
	Comment      string  `json:"comment"`
}

// AccountInfo is a point-in-time account snapshot.
type AccountInfo struct {
	Balance    float64 `json:"balance"`
	Equity     float64 `json:"equity"`
	Margin     float64 `json:"margin"`
	FreeMargin float64 `json:"free_margin"`
}

// RunResult reports one agent run: which period summaries were produced,
// the analysis text (if any), whether the notification went out, and any
// non-fatal errors collected along the way.
type RunResult struct {
	Summaries map[string]Summary `json:"summaries"`
	Analysis  string             `json:"analysis,omitempty"`
	Sent      bool               `json:"notification_sent"`
	Errors    []string           `json:"errors,omitempty"`
}
