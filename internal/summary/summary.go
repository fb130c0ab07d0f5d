package summary

import (
	"math"
	"sort"
	"strings"

	"mt5-summary-bot/internal/types"
)

// Fixed bucket labels used by the strategy classifier.
const (
	// LabelDepositWithdrawal buckets balance operations the terminal reports
	// as deals (Checkout / CheckoutSC comments).
	LabelDepositWithdrawal = "Deposit/Withdrawal"
	// LabelUntagged buckets round trips with no recoverable strategy comment,
	// i.e. trades placed before strategy tagging existed.
	LabelUntagged = "Untagged (Old Trades)"
)

// Summarize aggregates a window of raw deals into a Summary.
//
// Only round trips count: a position needs both its opening and closing deal
// inside the window to contribute to any total. The function is pure and
// order-independent, except that duplicate opening deals for one position
// (partial fills) resolve last-write-wins — an approximation kept for
// compatibility with the terminal's own reporting.
func Summarize(deals []types.Deal) types.Summary {
	sum := types.Summary{Strategies: map[string]types.StrategyPerf{}}
	if len(deals) == 0 {
		return sum
	}

	entries := make(map[int64]types.Deal)
	exits := make(map[int64]types.Deal)
	// Original strategy tag per position, captured from the opening leg
	// before the terminal can overwrite it with [sl ...]/[tp ...] markers
	// on the closing leg.
	recovered := make(map[int64]string)
	for _, d := range deals {
		switch d.Entry {
		case types.DealEntryIn:
			if strings.TrimSpace(d.Comment) != "" {
				recovered[d.PositionID] = d.Comment
			}
			entries[d.PositionID] = d
		case types.DealEntryOut:
			exits[d.PositionID] = d
		}
	}

	// Round trips are positions present in both maps. Iterate them in a
	// fixed order so float accumulation is bit-identical across calls.
	ids := make([]int64, 0, len(exits))
	for id := range exits {
		if _, ok := entries[id]; ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var profit, swap, commission, fee float64
	for _, id := range ids {
		exit := exits[id]
		label := ResolveLabel(exit.Comment, recovered[id])

		perf := sum.Strategies[label]
		perf.Trades++
		perf.PnL += exit.Profit + exit.Swap - exit.Commission - exit.Fee
		switch {
		case exit.Profit > 0:
			sum.WinningTrades++
			perf.Wins++
		case exit.Profit < 0:
			sum.LosingTrades++
			perf.Losses++
		}
		// Profit of exactly zero counts toward trades and PnL but is
		// neither a win nor a loss.
		sum.Strategies[label] = perf

		profit += exit.Profit
		swap += exit.Swap
		commission += exit.Commission
		fee += exit.Fee
		sum.CompletedTrades++
	}

	sum.TotalPnL = round2(profit + swap - commission - fee)
	sum.Profit = round2(profit)
	sum.Swap = round2(swap)
	sum.Commission = round2(commission)
	if sum.CompletedTrades > 0 {
		sum.WinRate = round2(float64(sum.WinningTrades) / float64(sum.CompletedTrades) * 100)
	}
	return sum
}

// ResolveLabel maps a closing deal's comment (plus the recovered opening
// comment, if any) to the strategy bucket name.
func ResolveLabel(exitComment, entryComment string) string {
	c := strings.TrimSpace(exitComment)
	lower := strings.ToLower(c)
	if (c == "" || strings.Contains(lower, "[sl ") || strings.Contains(lower, "[tp ")) && strings.TrimSpace(entryComment) != "" {
		c = strings.TrimSpace(entryComment)
	}
	switch {
	case strings.Contains(c, "Checkout"):
		return LabelDepositWithdrawal
	case c == "":
		return LabelUntagged
	default:
		return c
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
