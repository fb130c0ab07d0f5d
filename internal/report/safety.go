package report

import (
	"fmt"
	"strings"

	"mt5-summary-bot/internal/types"
)

// Thresholds bounds the acceptable floating loss on a single open position.
// A zero field disables that rule.
type Thresholds struct {
	MaxLossUSD float64 // absolute dollars
	MaxLossPct float64 // percent of account balance
}

// Evaluate decides whether the analysis prompt may discuss closing open
// positions. It returns allowed=true when at least one position's floating
// loss breaches a threshold, together with a note describing the outcome.
// Pure function: no clock, no I/O.
func Evaluate(positions []types.Position, balance float64, th Thresholds) (bool, string) {
	var breached []string
	for _, p := range positions {
		loss := -p.Profit
		if loss <= 0 {
			continue
		}
		if th.MaxLossUSD > 0 && loss >= th.MaxLossUSD {
			breached = append(breached, fmt.Sprintf("%s ($%.2f floating loss)", p.Symbol, loss))
			continue
		}
		if th.MaxLossPct > 0 && balance > 0 && loss/balance*100 >= th.MaxLossPct {
			breached = append(breached, fmt.Sprintf("%s (%.2f%% of balance)", p.Symbol, loss/balance*100))
		}
	}

	if len(breached) > 0 {
		return true, fmt.Sprintf("Loss policy: %s breached the floating-loss threshold; close recommendations permitted.",
			strings.Join(breached, ", "))
	}
	return false, "Loss policy: no open position breaches the floating-loss threshold; close recommendations suppressed."
}
