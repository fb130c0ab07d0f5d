package report

import (
	"sort"

	"mt5-summary-bot/internal/summary"
	"mt5-summary-bot/internal/types"
)

// RankedStrategy pairs a bucket name with its accumulated performance.
type RankedStrategy struct {
	Name string
	Perf types.StrategyPerf
}

// TopStrategies ranks a summary's strategy buckets by descending PnL,
// excluding the Deposit/Withdrawal bucket. Ties keep alphabetical order.
// n <= 0 returns every ranked strategy.
func TopStrategies(s types.Summary, n int) []RankedStrategy {
	names := make([]string, 0, len(s.Strategies))
	for name := range s.Strategies {
		if name == summary.LabelDepositWithdrawal {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	ranked := make([]RankedStrategy, 0, len(names))
	for _, name := range names {
		ranked = append(ranked, RankedStrategy{Name: name, Perf: s.Strategies[name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Perf.PnL > ranked[j].Perf.PnL
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
