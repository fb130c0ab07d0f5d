package report

import (
	"fmt"
	"strings"
	"time"

	"mt5-summary-bot/internal/summary"
	"mt5-summary-bot/internal/types"
)

// PeriodSummary is one period's aggregate, ordered for display by the caller.
type PeriodSummary struct {
	Period  summary.Period
	Summary types.Summary
}

// Input carries everything the formatter renders. Account and Analysis are
// optional; missing pieces simply omit their sections.
type Input struct {
	Now        time.Time
	Account    *types.AccountInfo
	Positions  []types.Position
	Periods    []PeriodSummary
	Analysis   string
	PolicyNote string
}

// Formatter renders notification messages bounded by a character budget.
type Formatter struct {
	CharBudget    int
	TopStrategies int
}

// TruncationMarker is appended whenever the message had to be cut.
const TruncationMarker = "\n\n...[truncated]"

func NewFormatter(charBudget, topStrategies int) *Formatter {
	if charBudget <= 0 {
		charBudget = 4096
	}
	if topStrategies <= 0 {
		topStrategies = 5
	}
	return &Formatter{CharBudget: charBudget, TopStrategies: topStrategies}
}

// Message renders the chat notification. Structural content (headers, period
// stats, open positions, strategy ranking) is never cut in favor of the
// analysis: the analysis segment is truncated first, and only if structure
// alone overflows the budget is the whole text hard-cut. Never errors; the
// result is always within the budget, counted in runes.
func (f *Formatter) Message(in Input) string {
	structural := f.structural(in)

	analysis := ""
	if strings.TrimSpace(in.Analysis) != "" {
		analysis = fmt.Sprintf("\n<b>🤖 AI Insights</b>\n<i>%s</i>\n", in.Analysis)
	}

	return fitBudget(structural, analysis, f.CharBudget)
}

func (f *Formatter) structural(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<b>📊 Trading Summary</b> | %s\n\n", in.Now.Format("2006-01-02 15:04:05"))

	if in.Account != nil {
		fmt.Fprintf(&b, "💰 <b>Account:</b> Balance: $%.2f | Equity: $%.2f | Free Margin: $%.2f\n\n",
			in.Account.Balance, in.Account.Equity, in.Account.FreeMargin)
	}

	if n := untaggedToday(in.Periods); n > 0 {
		fmt.Fprintf(&b, "⚠️ <b>WARNING:</b> %d untagged trade(s) detected today! Check your EA strategy tagging.\n\n", n)
	}

	if len(in.Positions) > 0 {
		fmt.Fprintf(&b, "<b>🟡 Open Positions (%d)</b>\n", len(in.Positions))
		for _, p := range in.Positions {
			fmt.Fprintf(&b, "%s <b>%s</b> | Vol: %v | Entry: %.5f | Current: %.5f | P&L: $%.2f | Strategy: %s\n",
				pnlEmoji(p.Profit), p.Symbol, p.Volume, p.OpenPrice, p.CurrentPrice, p.Profit, positionStrategy(p))
		}
		b.WriteString("\n")
	}

	for _, ps := range in.Periods {
		s := ps.Summary
		emoji := "📆"
		if ps.Period == summary.PeriodDay {
			emoji = "📅"
		}
		fmt.Fprintf(&b, "<b>%s %s</b>\n%s $%.2f | %d trades (W:%d L:%d) | WR: %.2f%%\n",
			emoji, ps.Period.Title(), pnlEmoji(s.TotalPnL), s.TotalPnL,
			s.CompletedTrades, s.WinningTrades, s.LosingTrades, s.WinRate)
	}

	if ys, ok := yearSummary(in.Periods); ok && len(ys.Strategies) > 0 {
		ranked := TopStrategies(ys, f.TopStrategies)
		if len(ranked) > 0 {
			b.WriteString("\n<b>📈 Strategy Performance (YTD)</b>\n")
			for _, r := range ranked {
				wr := 0.0
				if r.Perf.Trades > 0 {
					wr = float64(r.Perf.Wins) / float64(r.Perf.Trades) * 100
				}
				fmt.Fprintf(&b, "%s <b>%s</b>: $%.2f | %d trades | %.1f%% WR | W:%d L:%d\n",
					pnlEmoji(r.Perf.PnL), r.Name, r.Perf.PnL, r.Perf.Trades, wr, r.Perf.Wins, r.Perf.Losses)
			}
		}
	}

	if in.PolicyNote != "" {
		fmt.Fprintf(&b, "\n🛡 <i>%s</i>\n", in.PolicyNote)
	}

	return b.String()
}

// fitBudget enforces the character budget. Budgets are counted in runes, the
// same unit the chat sink counts.
func fitBudget(structural, analysis string, budget int) string {
	s := []rune(structural)
	a := []rune(analysis)
	if len(s)+len(a) <= budget {
		return structural + analysis
	}

	m := []rune(TruncationMarker)
	if len(s)+len(m) >= budget {
		// Pathological: structure alone overflows. Hard-cut, marker if it fits.
		if budget <= len(m) {
			return string(s[:budget])
		}
		return string(s[:budget-len(m)]) + TruncationMarker
	}

	room := budget - len(s) - len(m)
	return structural + string(a[:room]) + TruncationMarker
}

func untaggedToday(periods []PeriodSummary) int {
	for _, ps := range periods {
		if ps.Period == summary.PeriodDay {
			return ps.Summary.Strategies[summary.LabelUntagged].Trades
		}
	}
	return 0
}

func yearSummary(periods []PeriodSummary) (types.Summary, bool) {
	for _, ps := range periods {
		if ps.Period == summary.PeriodYear {
			return ps.Summary, true
		}
	}
	return types.Summary{}, false
}

func positionStrategy(p types.Position) string {
	if strings.TrimSpace(p.Comment) == "" {
		return "No strategy"
	}
	return p.Comment
}

func pnlEmoji(v float64) string {
	if v >= 0 {
		return "🟢"
	}
	return "🔴"
}
