package report

import (
	"fmt"
	"strings"
	"time"

	"mt5-summary-bot/internal/summary"
	"mt5-summary-bot/internal/types"
)

// PromptInput carries the data the analysis prompt is built from.
type PromptInput struct {
	Now              time.Time
	Positions        []types.Position
	Periods          []PeriodSummary
	TopStrategies    int
	AllowCloseAdvice bool
	MaxOutputChars   int
}

// BuildPrompt assembles the free-text generator prompt: performance numbers,
// context notes (weekend, legacy untagged bucket, close-advice policy) and
// output-format instructions. No length cap on the prompt itself; the
// generator is instructed to cap its own output.
func BuildPrompt(in PromptInput) string {
	var b strings.Builder

	b.WriteString("Analyze this forex trading performance:\n\n")

	if wd := in.Now.Weekday(); wd == time.Saturday || wd == time.Sunday {
		b.WriteString("⚠️ TODAY IS WEEKEND - Forex markets are closed. Zero trades today is NORMAL and EXPECTED. DO NOT mention this as a concern.\n\n")
	}

	if len(in.Positions) > 0 {
		fmt.Fprintf(&b, "**OPEN POSITIONS (%d):**\n", len(in.Positions))
		var exposure float64
		for _, p := range in.Positions {
			exposure += p.Profit
			status := "LOSING"
			if p.Profit > 0 {
				status = "WINNING"
			}
			fmt.Fprintf(&b, "- %s [%s]: Vol: %v | Entry: %.5f | Current: %.5f | Floating P&L: $%.2f | Strategy: %s\n",
				p.Symbol, status, p.Volume, p.OpenPrice, p.CurrentPrice, p.Profit, positionStrategy(p))
		}
		fmt.Fprintf(&b, "Total Open Exposure: $%.2f\n\n", exposure)
	} else {
		b.WriteString("**OPEN POSITIONS:** None (all positions closed)\n\n")
	}

	for _, ps := range in.Periods {
		s := ps.Summary
		fmt.Fprintf(&b, "**%s** P&L: $%.2f | %d trades | Win Rate: %.2f%% | Wins: %d | Losses: %d\n",
			strings.ToUpper(ps.Period.Title()), s.TotalPnL, s.CompletedTrades, s.WinRate, s.WinningTrades, s.LosingTrades)
	}

	if ys, ok := yearSummary(in.Periods); ok && len(ys.Strategies) > 0 {
		ranked := TopStrategies(ys, in.TopStrategies)
		if len(ranked) > 0 {
			b.WriteString("\n**STRATEGY BREAKDOWN (Year-to-Date):**\n")
			for _, r := range ranked {
				wr := 0.0
				if r.Perf.Trades > 0 {
					wr = float64(r.Perf.Wins) / float64(r.Perf.Trades) * 100
				}
				status := "LOSING"
				if r.Perf.PnL > 0 {
					status = "PROFITABLE"
				}
				fmt.Fprintf(&b, "- %s [%s]: P&L $%.2f | %d trades | %.1f%% win rate | Wins: %d Losses: %d\n",
					r.Name, status, r.Perf.PnL, r.Perf.Trades, wr, r.Perf.Wins, r.Perf.Losses)
			}
		}
	}

	fmt.Fprintf(&b, "\n⚠️ CONTEXT: '%s' = historical trades from BEFORE the strategy tagging system. These are LEGACY trades. Exclude them from qualitative judgments and focus on CURRENT tagged strategies as they reflect the ACTIVE trading approach.\n",
		summary.LabelUntagged)

	maxChars := in.MaxOutputChars
	if maxChars <= 0 {
		maxChars = 800
	}

	if len(in.Positions) > 0 {
		if !in.AllowCloseAdvice {
			b.WriteString("\n⚠️ POLICY: No open position currently breaches the loss threshold. DO NOT recommend closing any open position.\n")
		}
		fmt.Fprintf(&b, `
MAX %d CHARS. Give me:
1. **Key Insight** (1 line): Main takeaway
2. **Open Positions** (1 line): Quick risk check
3. **Risks** (1-2 lines): Biggest concerns
4. **Actions** (1-2 lines): What to do next

Be direct. Negative P&L = LOSING.
`, maxChars)
	} else {
		fmt.Fprintf(&b, `
MAX %d CHARS. Give me:
1. **Key Insight** (1 line): Main takeaway
2. **Best Performers** (1-2 lines): Only list strategies with POSITIVE P&L. If none, say "No profitable tagged strategies yet"
3. **Risks** (1-2 lines): Biggest concerns
4. **Actions** (1-2 lines): What to do next

Be direct. Negative P&L = LOSING.
`, maxChars)
	}

	return b.String()
}
